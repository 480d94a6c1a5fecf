package analyzer

import (
	"context"
	"sync"

	"go-frame-analyzer/pkg/models"
)

// AnalyzeBatch scores an ordered sequence of frame requests. The output
// always has the same length as the input and results[i] corresponds to
// reqs[i]; a failure on one frame degrades that result only and never
// aborts the rest of the batch.
func (fs *frameScorer) AnalyzeBatch(ctx context.Context, reqs []models.FrameRequest) []models.FrameAnalysis {
	results := make([]models.FrameAnalysis, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	var wg sync.WaitGroup
	for i := range reqs {
		i := i
		wg.Add(1)
		fs.pool.Submit(func() {
			defer wg.Done()
			results[i] = fs.AnalyzeFrame(ctx, reqs[i])
		})
	}
	wg.Wait()

	return results
}
