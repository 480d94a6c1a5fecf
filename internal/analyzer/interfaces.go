package analyzer

import (
	"context"
	"image"

	"go-frame-analyzer/pkg/models"
)

// Detector is the external object-detection capability. Implementations
// must return class names from the COCO vocabulary, confidences in [0,1]
// and normalized bounding boxes. Bounding boxes are not trusted and are
// clamped before any arithmetic.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]models.Detection, error)

	// Ready reports whether the detector has finished initializing
	// (model weights loaded, runtime constructed).
	Ready() bool
}

// FrameProvider resolves a frame reference to decoded pixel data.
type FrameProvider interface {
	FetchFrame(ctx context.Context, frameRef string) (image.Image, error)
}

// MetricsCalculator computes raw low-level signals from a grayscale grid.
// All returned values are raw measurements; mapping to [0,1] desirability
// scores is done by the scoring profile.
type MetricsCalculator interface {
	// LaplacianVariance is the variance of the discrete Laplacian
	// edge response. Unbounded above; zero for uniform grids.
	LaplacianVariance(gray *image.Gray) float64

	// MeanBrightness is the mean intensity normalized to [0,1].
	MeanBrightness(gray *image.Gray) float64

	// Contrast is the intensity standard deviation normalized to [0,1].
	Contrast(gray *image.Gray) float64
}

// CompositionScorer rates how favorably detected objects are framed.
type CompositionScorer interface {
	Score(detections []models.Detection) float64
}

// FrameAnalyzer is the engine's main entry point: it turns frame requests
// into FrameAnalysis results. Per-frame failures never escape as errors;
// they surface as degraded results with a failure reason.
type FrameAnalyzer interface {
	AnalyzeFrame(ctx context.Context, req models.FrameRequest) models.FrameAnalysis
	AnalyzeBatch(ctx context.Context, reqs []models.FrameRequest) []models.FrameAnalysis

	// Ready reports whether the underlying detector is initialized.
	Ready() bool

	Close() error
}
