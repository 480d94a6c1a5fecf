package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-frame-analyzer/pkg/models"
)

func validRequest() models.FrameRequest {
	return models.FrameRequest{
		FramePath:  "frames/001.jpg",
		FrameIndex: 0,
		Timestamp:  0.5,
	}
}

func TestValidateFrameRequest(t *testing.T) {
	validator := NewRequestValidator()

	testCases := []struct {
		name    string
		mutate  func(*models.FrameRequest)
		wantErr bool
	}{
		{"Valid", func(r *models.FrameRequest) {}, false},
		{"Empty path", func(r *models.FrameRequest) { r.FramePath = "" }, true},
		{"Negative index", func(r *models.FrameRequest) { r.FrameIndex = -1 }, true},
		{"Negative timestamp", func(r *models.FrameRequest) { r.Timestamp = -0.1 }, true},
		{"Zero timestamp", func(r *models.FrameRequest) { r.Timestamp = 0 }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := validator.ValidateFrameRequest(req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	validator := NewRequestValidatorWithLimits(Limits{MaxBatchSize: 3})

	t.Run("Empty batch rejected", func(t *testing.T) {
		assert.Error(t, validator.ValidateBatch(nil))
		assert.Error(t, validator.ValidateBatch([]models.FrameRequest{}))
	})

	t.Run("Within limit", func(t *testing.T) {
		reqs := []models.FrameRequest{validRequest(), validRequest(), validRequest()}
		assert.NoError(t, validator.ValidateBatch(reqs))
	})

	t.Run("Over limit", func(t *testing.T) {
		reqs := []models.FrameRequest{validRequest(), validRequest(), validRequest(), validRequest()}
		assert.Error(t, validator.ValidateBatch(reqs))
	})

	t.Run("Bad request names its index", func(t *testing.T) {
		reqs := []models.FrameRequest{validRequest(), {FramePath: ""}}
		err := validator.ValidateBatch(reqs)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "request 1")
	})
}

func TestClampDetections(t *testing.T) {
	testCases := []struct {
		name     string
		input    models.Detection
		expected models.Detection
	}{
		{
			name:     "Already normalized",
			input:    models.Detection{ClassName: "bottle", Confidence: 0.9, BBox: models.BoundingBox{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}},
			expected: models.Detection{ClassName: "bottle", Confidence: 0.9, BBox: models.BoundingBox{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}},
		},
		{
			name:     "Confidence above one",
			input:    models.Detection{Confidence: 1.4, BBox: models.BoundingBox{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}},
			expected: models.Detection{Confidence: 1.0, BBox: models.BoundingBox{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}},
		},
		{
			name:     "Negative origin",
			input:    models.Detection{Confidence: 0.5, BBox: models.BoundingBox{X: -0.2, Y: -0.1, Width: 0.3, Height: 0.3}},
			expected: models.Detection{Confidence: 0.5, BBox: models.BoundingBox{X: 0, Y: 0, Width: 0.3, Height: 0.3}},
		},
		{
			name:     "Box spills past the right edge",
			input:    models.Detection{Confidence: 0.5, BBox: models.BoundingBox{X: 0.8, Y: 0.2, Width: 0.5, Height: 0.3}},
			expected: models.Detection{Confidence: 0.5, BBox: models.BoundingBox{X: 0.8, Y: 0.2, Width: 0.2, Height: 0.3}},
		},
		{
			name:     "Box spills past the bottom edge",
			input:    models.Detection{Confidence: 0.5, BBox: models.BoundingBox{X: 0.2, Y: 0.9, Width: 0.3, Height: 0.4}},
			expected: models.Detection{Confidence: 0.5, BBox: models.BoundingBox{X: 0.2, Y: 0.9, Width: 0.3, Height: 0.1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampDetections([]models.Detection{tc.input})
			assert.Len(t, got, 1)
			assert.InDelta(t, tc.expected.Confidence, got[0].Confidence, 1e-9)
			assert.InDelta(t, tc.expected.BBox.X, got[0].BBox.X, 1e-9)
			assert.InDelta(t, tc.expected.BBox.Y, got[0].BBox.Y, 1e-9)
			assert.InDelta(t, tc.expected.BBox.Width, got[0].BBox.Width, 1e-9)
			assert.InDelta(t, tc.expected.BBox.Height, got[0].BBox.Height, 1e-9)
		})
	}
}

func TestClampDetections_DoesNotMutateInput(t *testing.T) {
	input := []models.Detection{{Confidence: 1.5, BBox: models.BoundingBox{X: -0.1, Y: 0, Width: 0.5, Height: 0.5}}}
	ClampDetections(input)
	assert.Equal(t, 1.5, input[0].Confidence)
	assert.Equal(t, -0.1, input[0].BBox.X)
}
