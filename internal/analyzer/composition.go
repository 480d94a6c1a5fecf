package analyzer

import (
	"math"

	"go-frame-analyzer/pkg/models"
)

// noDetectionCompositionScore is returned for frames without detections.
// Absence of objects is below average, not worst case.
const noDetectionCompositionScore = 0.3

// highConfidenceBoost rewards frames carrying at least one detection with
// confidence above 0.8.
const highConfidenceBoost = 1.2

// compositionScorer implements CompositionScorer with centering and size
// heuristics over normalized bounding boxes.
type compositionScorer struct{}

// NewCompositionScorer creates a new composition scorer
func NewCompositionScorer() CompositionScorer {
	return &compositionScorer{}
}

// Score returns the best per-object composition score across all
// detections. Taking the max rather than a sum or mean keeps one
// well-framed object from being penalized by surrounding clutter.
func (cs *compositionScorer) Score(detections []models.Detection) float64 {
	if len(detections) == 0 {
		return noDetectionCompositionScore
	}

	var best, maxConfidence float64
	for _, det := range detections {
		cx, cy := det.BBox.Center()
		distanceFromCenter := math.Hypot(cx-0.5, cy-0.5)

		// Linear decay to 0 at half a frame away from center.
		centerScore := 1.0 - math.Min(distanceFromCenter*2, 1.0)
		sizeScore := sizeScoreForArea(det.BBox.Area())

		objScore := (centerScore*0.4 + sizeScore*0.6) * det.Confidence
		best = math.Max(best, objScore)
		maxConfidence = math.Max(maxConfidence, det.Confidence)
	}

	if maxConfidence > 0.8 {
		best *= highConfidenceBoost
	}

	return math.Min(best, 1.0)
}

// sizeScoreForArea rates a normalized object area: [0.1, 0.6] is the
// sweet spot, smaller objects ramp up linearly, oversized objects ramp
// down with a floor of 0.2.
func sizeScoreForArea(area float64) float64 {
	switch {
	case area >= 0.1 && area <= 0.6:
		return 1.0
	case area < 0.1:
		return area * 10
	default:
		return math.Max(0.2, 1.0-(area-0.6)*2)
	}
}
