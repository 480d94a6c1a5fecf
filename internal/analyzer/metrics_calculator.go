package analyzer

import (
	"image"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// blurVarianceRef is the Laplacian-variance value mapped to a sharpness
// score of 1.0. Variances above it saturate.
const blurVarianceRef = 1000.0

// metricsCalculator implements MetricsCalculator using Gonum for the
// statistical reductions.
type metricsCalculator struct {
	slicePool sync.Pool
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() MetricsCalculator {
	return &metricsCalculator{
		slicePool: sync.Pool{
			New: func() interface{} {
				return make([]float64, 0, 1024)
			},
		},
	}
}

// LaplacianVariance computes the variance of the discrete Laplacian
// edge response over the interior of the grid.
func (mc *metricsCalculator) LaplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width < 3 || height < 3 {
		return 0
	}

	data := mc.slicePool.Get().([]float64)
	defer mc.slicePool.Put(data[:0])

	if cap(data) < (width-2)*(height-2) {
		data = make([]float64, 0, (width-2)*(height-2))
	}

	// Laplacian kernel: [0, 1, 0; 1, -4, 1; 0, 1, 0]
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			top := float64(gray.GrayAt(x, y-1).Y)
			bottom := float64(gray.GrayAt(x, y+1).Y)
			left := float64(gray.GrayAt(x-1, y).Y)
			right := float64(gray.GrayAt(x+1, y).Y)

			data = append(data, -4*center+top+bottom+left+right)
		}
	}

	if len(data) == 0 {
		return 0
	}

	return stat.Variance(data, nil)
}

// MeanBrightness computes the mean intensity normalized to [0,1].
func (mc *metricsCalculator) MeanBrightness(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += float64(gray.GrayAt(x, y).Y)
		}
	}

	return total / float64(width*height) / 255.0
}

// Contrast computes the intensity standard deviation normalized to [0,1].
func (mc *metricsCalculator) Contrast(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return 0
	}

	data := mc.slicePool.Get().([]float64)
	defer mc.slicePool.Put(data[:0])

	if cap(data) < width*height {
		data = make([]float64, 0, width*height)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			data = append(data, float64(gray.GrayAt(x, y).Y))
		}
	}

	return stat.StdDev(data, nil) / 255.0
}

// SharpnessScore maps a Laplacian variance to [0,1] where higher means
// sharper.
func SharpnessScore(variance float64) float64 {
	return clamp01(variance / blurVarianceRef)
}

// InvertedBlurScore maps a Laplacian variance to [0,1] where higher means
// blurrier. The thumbnail-selection profile stores this convention.
func InvertedBlurScore(variance float64) float64 {
	return 1.0 - SharpnessScore(variance)
}

// ThumbnailBrightnessScore maps mean brightness to a desirability score
// with the thumbnail-selection breakpoints: dark frames ramp up from 0,
// bright frames ramp down steeply, the wide mid-band scores 1.0.
func ThumbnailBrightnessScore(brightness float64) float64 {
	switch {
	case brightness < 0.2:
		return clamp01(brightness * 2.5)
	case brightness > 0.8:
		return clamp01((1.0 - brightness) * 5)
	default:
		return 1.0
	}
}

// ServiceBrightnessScore maps mean brightness to a desirability score
// with the serving-path breakpoints: [0.3, 0.8] is optimal, extremes are
// penalized linearly.
func ServiceBrightnessScore(brightness float64) float64 {
	switch {
	case brightness >= 0.3 && brightness <= 0.8:
		return 1.0
	case brightness < 0.3:
		return clamp01(brightness / 0.3)
	default:
		return clamp01((1.0 - brightness) / 0.2)
	}
}

// ContrastScore maps a normalized standard deviation to [0,1].
func ContrastScore(contrast float64) float64 {
	return math.Min(contrast*2, 1.0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
