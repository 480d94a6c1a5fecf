package validation

import (
	"fmt"

	"go-frame-analyzer/pkg/models"
)

// Limits bounds what the analysis surfaces accept.
type Limits struct {
	MaxBatchSize int
}

// DefaultLimits returns the default request limits.
func DefaultLimits() Limits {
	return Limits{
		MaxBatchSize: 64,
	}
}

// RequestValidator validates analysis requests before they reach the
// scoring engine.
type RequestValidator struct {
	limits Limits
}

// NewRequestValidator creates a validator with default limits.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{limits: DefaultLimits()}
}

// NewRequestValidatorWithLimits creates a validator with custom limits.
func NewRequestValidatorWithLimits(limits Limits) *RequestValidator {
	return &RequestValidator{limits: limits}
}

// ValidateFrameRequest checks a single frame request.
func (rv *RequestValidator) ValidateFrameRequest(req models.FrameRequest) error {
	if req.FramePath == "" {
		return fmt.Errorf("frame_path must not be empty")
	}
	if req.FrameIndex < 0 {
		return fmt.Errorf("frame_index must not be negative (got %d)", req.FrameIndex)
	}
	if req.Timestamp < 0 {
		return fmt.Errorf("timestamp must not be negative (got %f)", req.Timestamp)
	}
	return nil
}

// ValidateBatch checks a batch of frame requests.
func (rv *RequestValidator) ValidateBatch(reqs []models.FrameRequest) error {
	if len(reqs) == 0 {
		return fmt.Errorf("batch must contain at least one frame request")
	}
	if len(reqs) > rv.limits.MaxBatchSize {
		return fmt.Errorf("batch size %d exceeds limit %d", len(reqs), rv.limits.MaxBatchSize)
	}
	for i, req := range reqs {
		if err := rv.ValidateFrameRequest(req); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
	}
	return nil
}

// ClampDetections clamps detector-provided geometry into the normalized
// coordinate space. Upstream models occasionally emit boxes slightly
// outside [0,1]; width and height are additionally bounded so the box
// stays inside the unit square.
func ClampDetections(detections []models.Detection) []models.Detection {
	clamped := make([]models.Detection, len(detections))
	for i, det := range detections {
		det.Confidence = clamp(det.Confidence, 0, 1)
		det.BBox.X = clamp(det.BBox.X, 0, 1)
		det.BBox.Y = clamp(det.BBox.Y, 0, 1)
		det.BBox.Width = clamp(det.BBox.Width, 0, 1-det.BBox.X)
		det.BBox.Height = clamp(det.BBox.Height, 0, 1-det.BBox.Y)
		clamped[i] = det
	}
	return clamped
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
