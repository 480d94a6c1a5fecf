package models

// BoundingBox is an axis-aligned box in normalized coordinates.
// All fields are fractions of the frame dimensions in [0,1].
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the normalized area of the box.
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}

// Center returns the normalized center point of the box.
func (b BoundingBox) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Detection is one labeled, localized object instance reported by the
// detector for a frame. Detections are immutable and request-scoped.
type Detection struct {
	ClassName  string      `json:"class_name"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}

// FailureReason classifies why a frame analysis was degraded.
type FailureReason string

const (
	// FailureFrameNotFound means the frame reference could not be resolved.
	FailureFrameNotFound FailureReason = "frame_not_found"
	// FailureDecodeFailed means the frame bytes could not be decoded.
	FailureDecodeFailed FailureReason = "decode_failed"
	// FailureDetectorFailed means the detector returned an error.
	FailureDetectorFailed FailureReason = "detector_failed"
)

// FrameAnalysis is the scoring result for one frame. All score fields are
// in [0,1]. QualityScore is always a weighted recombination of the other
// signals according to the active scoring profile; it is never set
// independently.
//
// Degraded results carry zeroed scores, HasProduct=false and an empty
// detection list, plus a FailureReason so callers can tell a legitimately
// low score apart from a defaulted one.
type FrameAnalysis struct {
	FrameIndex       int           `json:"frame_index"`
	Timestamp        float64       `json:"timestamp"`
	HasProduct       bool          `json:"has_product"`
	QualityScore     float64       `json:"quality_score"`
	BlurScore        float64       `json:"blur_score"`
	BrightnessScore  float64       `json:"brightness_score"`
	ContrastScore    float64       `json:"contrast_score"`
	CompositionScore float64       `json:"composition_score"`
	DetectedObjects  []Detection   `json:"detected_objects"`
	Degraded         bool          `json:"degraded,omitempty"`
	FailureReason    FailureReason `json:"failure_reason,omitempty"`
}

// FrameRequest identifies one frame to analyze. FramePath is a frame
// reference understood by the frame repository (local path, http(s) URL
// or Azure blob URL). FrameIndex and Timestamp are caller-supplied and
// echoed back unchanged in the result.
type FrameRequest struct {
	FramePath  string  `json:"frame_path" binding:"required"`
	FrameIndex int     `json:"frame_index"`
	Timestamp  float64 `json:"timestamp"`
	Profile    string  `json:"profile,omitempty"`
}
