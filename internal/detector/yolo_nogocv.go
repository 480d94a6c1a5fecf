//go:build !gocv
// +build !gocv

package detector

import (
	"context"
	"errors"
	"image"

	"go-frame-analyzer/pkg/models"
)

// YOLODetector is unavailable in builds without the gocv tag.
type YOLODetector struct{}

// NewYOLODetector fails: in-process inference needs the gocv build tag.
func NewYOLODetector(opts Options) (*YOLODetector, error) {
	return nil, errors.New("built without gocv support: rebuild with -tags gocv or use DETECTOR=remote")
}

func (d *YOLODetector) Detect(ctx context.Context, img image.Image) ([]models.Detection, error) {
	return nil, errors.New("gocv build tag is not enabled")
}

func (d *YOLODetector) Ready() bool {
	return false
}

func (d *YOLODetector) Close() error {
	return nil
}
