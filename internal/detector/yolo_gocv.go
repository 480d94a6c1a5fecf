//go:build gocv
// +build gocv

package detector

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"go-frame-analyzer/pkg/models"
)

// yoloInputSize is the square input resolution of the YOLO network.
const yoloInputSize = 640

// YOLODetector runs a COCO-trained YOLO network through the OpenCV DNN
// module. Model load happens once at construction and is expensive; the
// instance is meant to be created at startup and shared.
//
// The DNN execution context is not safe for concurrent reuse, so Detect
// serializes inference with a mutex.
type YOLODetector struct {
	mu     sync.Mutex
	net    gocv.Net
	opts   Options
	loaded bool
}

// NewYOLODetector loads the network weights and prepares the runtime.
func NewYOLODetector(opts Options) (*YOLODetector, error) {
	net := gocv.ReadNet(opts.ModelPath, opts.ConfigPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", opts.ModelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("set dnn backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("set dnn target: %w", err)
	}

	return &YOLODetector{net: net, opts: opts, loaded: true}, nil
}

// Detect runs inference on the frame and returns detections with class
// names, confidences and normalized bounding boxes, filtered by the
// configured confidence threshold and de-duplicated with NMS.
func (d *YOLODetector) Detect(ctx context.Context, img image.Image) ([]models.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0/255.0,
		image.Pt(yoloInputSize, yoloInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	return d.decodeOutput(output, mat.Cols(), mat.Rows())
}

// Ready reports whether the model finished loading.
func (d *YOLODetector) Ready() bool {
	return d.loaded
}

// Close releases the network.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = false
	return d.net.Close()
}

// decodeOutput parses the YOLO output tensor (rows of
// [cx, cy, w, h, class scores...]) into normalized detections.
func (d *YOLODetector) decodeOutput(output gocv.Mat, frameW, frameH int) ([]models.Detection, error) {
	reshaped := output.Reshape(1, output.Size()[1])
	defer reshaped.Close()

	rows := reshaped.Rows()
	cols := reshaped.Cols()
	if cols < 5 {
		return nil, fmt.Errorf("unexpected output shape %dx%d", rows, cols)
	}

	scaleX := float64(frameW) / yoloInputSize
	scaleY := float64(frameH) / yoloInputSize

	var boxes []image.Rectangle
	var confidences []float32
	var classIDs []int

	for r := 0; r < rows; r++ {
		bestClass, bestScore := 0, float32(0)
		for c := 4; c < cols; c++ {
			if score := reshaped.GetFloatAt(r, c); score > bestScore {
				bestScore = score
				bestClass = c - 4
			}
		}
		if float64(bestScore) < d.opts.ConfidenceThreshold {
			continue
		}

		cx := float64(reshaped.GetFloatAt(r, 0)) * scaleX
		cy := float64(reshaped.GetFloatAt(r, 1)) * scaleY
		w := float64(reshaped.GetFloatAt(r, 2)) * scaleX
		h := float64(reshaped.GetFloatAt(r, 3)) * scaleY

		boxes = append(boxes, image.Rect(
			int(cx-w/2), int(cy-h/2), int(cx+w/2), int(cy+h/2)))
		confidences = append(confidences, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return []models.Detection{}, nil
	}

	kept := gocv.NMSBoxes(boxes, confidences,
		float32(d.opts.ConfidenceThreshold), float32(d.opts.IOUThreshold))

	detections := make([]models.Detection, 0, len(kept))
	for _, idx := range kept {
		box := boxes[idx]
		detections = append(detections, models.Detection{
			ClassName:  ClassName(classIDs[idx]),
			Confidence: float64(confidences[idx]),
			BBox: models.BoundingBox{
				X:      float64(box.Min.X) / float64(frameW),
				Y:      float64(box.Min.Y) / float64(frameH),
				Width:  float64(box.Dx()) / float64(frameW),
				Height: float64(box.Dy()) / float64(frameH),
			},
		})
	}

	return detections, nil
}
