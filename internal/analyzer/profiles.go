package analyzer

import "fmt"

// Signals carries the raw quality signals a profile aggregates. Sharpness,
// Brightness and Contrast are already mapped to [0,1] desirability scores.
type Signals struct {
	Sharpness  float64
	Brightness float64
	Contrast   float64
	HasProduct bool
}

// ScoringProfile fixes which blur convention is stored, which brightness
// mapping applies and how the aggregate quality score is blended.
//
// Two profiles exist because the reference behavior genuinely diverges
// between the thumbnail-selection and serving call sites; they are kept
// as separately named, separately testable profiles rather than unified.
type ScoringProfile struct {
	Name string

	// BlurScore maps a raw Laplacian variance to the stored blur_score
	// field. The thumbnail profile stores the inverted convention
	// (higher = blurrier); the service profile stores sharpness.
	BlurScore func(variance float64) float64

	// BrightnessScore maps mean brightness to the stored
	// brightness_score field.
	BrightnessScore func(brightness float64) float64

	// ScoreComposition controls whether the composition heuristic runs.
	// The serving path never computed it; the asymmetry is preserved.
	ScoreComposition bool

	// Aggregate blends the signals into the single quality_score.
	Aggregate func(s Signals) float64
}

const (
	// ProfileThumbnail names the thumbnail-frame ranking profile.
	ProfileThumbnail = "thumbnail"
	// ProfileService names the batch/serving profile.
	ProfileService = "service"
)

// ThumbnailQualityProfile returns the profile used to rank candidate
// thumbnail frames:
//
//	quality = sharpness*0.4 + brightness*0.3 + contrast*0.3
//
// blur_score is stored inverted (higher = blurrier) and composition is
// computed and reported alongside, but not folded into the aggregate.
func ThumbnailQualityProfile() ScoringProfile {
	return ScoringProfile{
		Name:             ProfileThumbnail,
		BlurScore:        InvertedBlurScore,
		BrightnessScore:  ThumbnailBrightnessScore,
		ScoreComposition: true,
		Aggregate: func(s Signals) float64 {
			return s.Sharpness*0.4 + s.Brightness*0.3 + s.Contrast*0.3
		},
	}
}

// ServiceQualityProfile returns the profile used by the serving path:
//
//	quality = detection*0.4 + sharpness*0.3 + brightness*0.3
//
// where the detection term is 1.0 when a product class was detected and
// 0.3 otherwise. blur_score stores sharpness directly (higher = sharper).
func ServiceQualityProfile() ScoringProfile {
	return ScoringProfile{
		Name:             ProfileService,
		BlurScore:        SharpnessScore,
		BrightnessScore:  ServiceBrightnessScore,
		ScoreComposition: false,
		Aggregate: func(s Signals) float64 {
			detectionTerm := 0.3
			if s.HasProduct {
				detectionTerm = 1.0
			}
			return detectionTerm*0.4 + s.Sharpness*0.3 + s.Brightness*0.3
		},
	}
}

// ProfileByName resolves a profile name from a request. The empty string
// selects the service profile, matching the reference serving behavior.
func ProfileByName(name string) (ScoringProfile, error) {
	switch name {
	case "", ProfileService:
		return ServiceQualityProfile(), nil
	case ProfileThumbnail:
		return ThumbnailQualityProfile(), nil
	default:
		return ScoringProfile{}, fmt.Errorf("unknown scoring profile: %q", name)
	}
}
