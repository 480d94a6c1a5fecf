// Package detector provides object-detection backends for the frame
// analyzer: a gocv-backed YOLO detector (behind the gocv build tag), a
// remote HTTP client for a sidecar model server, and a stub for local
// development.
package detector

import (
	"context"
	"image"

	"go-frame-analyzer/pkg/models"
)

// Options configures a detector backend.
type Options struct {
	ModelPath           string
	ConfigPath          string
	ConfidenceThreshold float64
	IOUThreshold        float64
}

// DefaultOptions returns the reference detector configuration.
func DefaultOptions() Options {
	return Options{
		ModelPath:           "yolov8n.onnx",
		ConfidenceThreshold: 0.5,
		IOUThreshold:        0.5,
	}
}

// StubDetector reports no detections. It stands in for a real model in
// local development and keeps the analysis pipeline exercisable without
// model weights.
type StubDetector struct{}

// NewStubDetector creates a detector that always reports zero detections.
func NewStubDetector() *StubDetector {
	return &StubDetector{}
}

func (d *StubDetector) Detect(ctx context.Context, img image.Image) ([]models.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.Detection{}, nil
}

func (d *StubDetector) Ready() bool {
	return true
}
