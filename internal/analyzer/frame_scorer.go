package analyzer

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"time"

	"github.com/sirupsen/logrus"

	"go-frame-analyzer/internal/logger"
	"go-frame-analyzer/internal/repository"
	"go-frame-analyzer/pkg/models"
	"go-frame-analyzer/pkg/validation"
)

// frameScorer implements FrameAnalyzer. It is stateless per call; the
// injected detector is the only shared resource and is owned by the
// caller's startup lifecycle.
type frameScorer struct {
	detector     Detector
	frames       FrameProvider
	metrics      MetricsCalculator
	composition  CompositionScorer
	profile      ScoringProfile
	fetchTimeout time.Duration
	pool         *WorkerPool
}

// NewFrameAnalyzer creates a frame analyzer with the given detector and
// frame provider. defaultProfile applies when a request names no profile;
// fetchTimeout bounds each frame fetch (zero means no extra bound);
// batchWorkers sizes the batch worker pool (1 means sequential batches).
func NewFrameAnalyzer(detector Detector, frames FrameProvider, defaultProfile ScoringProfile, fetchTimeout time.Duration, batchWorkers int) FrameAnalyzer {
	pool := NewWorkerPool(batchWorkers)
	pool.Start()

	return &frameScorer{
		detector:     detector,
		frames:       frames,
		metrics:      NewMetricsCalculator(),
		composition:  NewCompositionScorer(),
		profile:      defaultProfile,
		fetchTimeout: fetchTimeout,
		pool:         pool,
	}
}

// AnalyzeFrame scores a single frame. All failures are contained here:
// the result is degraded, never an error, so batch callers stay isolated
// from individual bad frames.
func (fs *frameScorer) AnalyzeFrame(ctx context.Context, req models.FrameRequest) models.FrameAnalysis {
	profile := fs.profile
	if req.Profile != "" {
		if p, err := ProfileByName(req.Profile); err == nil {
			profile = p
		}
	}

	fetchCtx := ctx
	if fs.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, fs.fetchTimeout)
		defer cancel()
	}

	img, err := fs.frames.FetchFrame(fetchCtx, req.FramePath)
	if err != nil {
		reason := models.FailureDecodeFailed
		if errors.Is(err, repository.ErrFrameNotFound) {
			reason = models.FailureFrameNotFound
		}
		logger.WithError(err).WithFields(logrus.Fields{
			"frame_path":  req.FramePath,
			"frame_index": req.FrameIndex,
		}).Warn("Frame fetch failed, returning degraded result")
		return degradedAnalysis(req, reason)
	}

	detections, err := fs.detector.Detect(ctx, img)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"frame_path":  req.FramePath,
			"frame_index": req.FrameIndex,
		}).Error("Detector failed, returning degraded result")
		return degradedAnalysis(req, models.FailureDetectorFailed)
	}
	if detections == nil {
		detections = []models.Detection{}
	}
	detections = validation.ClampDetections(detections)

	gray := grayscale(img)
	variance := fs.metrics.LaplacianVariance(gray)
	brightness := fs.metrics.MeanBrightness(gray)
	contrast := fs.metrics.Contrast(gray)

	hasProduct := false
	for _, det := range detections {
		if IsProductClass(det.ClassName) {
			hasProduct = true
			break
		}
	}

	signals := Signals{
		Sharpness:  SharpnessScore(variance),
		Brightness: profile.BrightnessScore(brightness),
		Contrast:   ContrastScore(contrast),
		HasProduct: hasProduct,
	}

	analysis := models.FrameAnalysis{
		FrameIndex:      req.FrameIndex,
		Timestamp:       req.Timestamp,
		HasProduct:      hasProduct,
		QualityScore:    profile.Aggregate(signals),
		BlurScore:       profile.BlurScore(variance),
		BrightnessScore: signals.Brightness,
		ContrastScore:   signals.Contrast,
		DetectedObjects: detections,
	}

	if profile.ScoreComposition {
		analysis.CompositionScore = fs.composition.Score(detections)
	}

	return analysis
}

// Ready reports whether the injected detector finished initializing.
func (fs *frameScorer) Ready() bool {
	return fs.detector.Ready()
}

// Close shuts down the batch worker pool.
func (fs *frameScorer) Close() error {
	fs.pool.Close()
	return nil
}

// degradedAnalysis is the failure floor: zeroed scores, no product, empty
// detections, with the reason recorded.
func degradedAnalysis(req models.FrameRequest, reason models.FailureReason) models.FrameAnalysis {
	return models.FrameAnalysis{
		FrameIndex:      req.FrameIndex,
		Timestamp:       req.Timestamp,
		DetectedObjects: []models.Detection{},
		Degraded:        true,
		FailureReason:   reason,
	}
}

// grayscale converts a frame to an 8-bit grayscale grid.
func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}
