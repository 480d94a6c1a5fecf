package analyzer

import (
	"math"
	"testing"

	"go-frame-analyzer/pkg/models"
)

func detection(x, y, w, h, conf float64) models.Detection {
	return models.Detection{
		ClassName:  "bottle",
		Confidence: conf,
		BBox:       models.BoundingBox{X: x, Y: y, Width: w, Height: h},
	}
}

func TestCompositionScore_NoDetections(t *testing.T) {
	scorer := NewCompositionScorer()

	if got := scorer.Score(nil); got != 0.3 {
		t.Errorf("Expected 0.3 for nil detections, got %f", got)
	}
	if got := scorer.Score([]models.Detection{}); got != 0.3 {
		t.Errorf("Expected 0.3 for empty detections, got %f", got)
	}
}

func TestCompositionScore_CenteredObject(t *testing.T) {
	scorer := NewCompositionScorer()

	// Box {0.4, 0.4, 0.2, 0.2} is perfectly centered with area 0.04:
	// centerScore 1.0, sizeScore 0.4, boosted by 1.2 at full confidence.
	got := scorer.Score([]models.Detection{detection(0.4, 0.4, 0.2, 0.2, 1.0)})
	if math.Abs(got-0.768) > 1e-9 {
		t.Errorf("Expected 0.768 for centered small object, got %f", got)
	}
}

func TestCompositionScore_TakesBestObject(t *testing.T) {
	scorer := NewCompositionScorer()

	centered := detection(0.4, 0.4, 0.2, 0.2, 1.0)
	corner := detection(0.0, 0.0, 0.05, 0.05, 1.0)

	solo := scorer.Score([]models.Detection{centered})
	withClutter := scorer.Score([]models.Detection{corner, centered})
	if withClutter != solo {
		t.Errorf("Clutter changed the score: solo %f, with clutter %f", solo, withClutter)
	}
}

func TestCompositionScore_SizeBands(t *testing.T) {
	testCases := []struct {
		name     string
		area     float64
		expected float64
	}{
		{"Tiny ramps up", 0.05, 0.5},
		{"Sweet spot low edge", 0.1, 1.0},
		{"Sweet spot high edge", 0.6, 1.0},
		{"Oversized ramps down", 0.8, 0.6},
		{"Full frame floors", 1.0, 0.2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sizeScoreForArea(tc.area); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("sizeScoreForArea(%f) = %f, expected %f", tc.area, got, tc.expected)
			}
		})
	}
}

func TestCompositionScore_BoostThreshold(t *testing.T) {
	scorer := NewCompositionScorer()

	// Confidence exactly 0.8 does not earn the boost.
	atThreshold := scorer.Score([]models.Detection{detection(0.4, 0.4, 0.2, 0.2, 0.8)})
	expected := (1.0*0.4 + 0.4*0.6) * 0.8
	if math.Abs(atThreshold-expected) > 1e-9 {
		t.Errorf("Expected %f without boost at confidence 0.8, got %f", expected, atThreshold)
	}

	boosted := scorer.Score([]models.Detection{detection(0.4, 0.4, 0.2, 0.2, 0.81)})
	if math.Abs(boosted-expected*0.81/0.8*1.2) > 1e-9 {
		t.Errorf("Expected boosted score above threshold, got %f", boosted)
	}
}

func TestCompositionScore_ClampedToOne(t *testing.T) {
	scorer := NewCompositionScorer()

	// Centered box in the size sweet spot at full confidence: raw score
	// 1.0 boosted to 1.2 must clamp back to 1.0.
	got := scorer.Score([]models.Detection{detection(0.3, 0.3, 0.4, 0.4, 1.0)})
	if got != 1.0 {
		t.Errorf("Expected score clamped to 1.0, got %f", got)
	}
}

func TestCompositionScore_OffCenterDecay(t *testing.T) {
	scorer := NewCompositionScorer()

	centered := scorer.Score([]models.Detection{detection(0.35, 0.35, 0.3, 0.3, 0.7)})
	corner := scorer.Score([]models.Detection{detection(0.0, 0.0, 0.3, 0.3, 0.7)})
	if corner >= centered {
		t.Errorf("Corner object scored %f, not below centered %f", corner, centered)
	}
}
