package detector

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-frame-analyzer/pkg/models"
)

func testFrame() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func detectionServer(t *testing.T, detections []models.Detection, healthCode int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/detect":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if ct := r.Header.Get("Content-Type"); ct != "image/jpeg" {
				t.Errorf("Unexpected content type: %s", ct)
			}
			json.NewEncoder(w).Encode(remoteDetectResponse{Detections: detections})
		case "/health":
			w.WriteHeader(healthCode)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestRemoteDetector_Detect(t *testing.T) {
	detections := []models.Detection{
		{ClassName: "bottle", Confidence: 0.9, BBox: models.BoundingBox{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.3}},
		{ClassName: "person", Confidence: 0.3, BBox: models.BoundingBox{X: 0.5, Y: 0.5, Width: 0.2, Height: 0.2}},
	}
	server := detectionServer(t, detections, http.StatusOK)
	defer server.Close()

	opts := DefaultOptions()
	opts.ConfidenceThreshold = 0.5
	det := NewRemoteDetector(server.URL, opts)

	got, err := det.Detect(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The low-confidence detection is filtered locally.
	if len(got) != 1 {
		t.Fatalf("Expected 1 detection after filtering, got %d", len(got))
	}
	if got[0].ClassName != "bottle" {
		t.Errorf("Expected bottle, got %s", got[0].ClassName)
	}
}

func TestRemoteDetector_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	det := NewRemoteDetector(server.URL, DefaultOptions())
	if _, err := det.Detect(context.Background(), testFrame()); err == nil {
		t.Error("Expected error for server failure")
	}
}

func TestRemoteDetector_Unreachable(t *testing.T) {
	det := NewRemoteDetector("http://127.0.0.1:1", DefaultOptions())
	if _, err := det.Detect(context.Background(), testFrame()); err == nil {
		t.Error("Expected error for unreachable endpoint")
	}
	if det.Ready() {
		t.Error("Expected not ready for unreachable endpoint")
	}
}

func TestRemoteDetector_ReadyCaches(t *testing.T) {
	healthCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			healthCalls++
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	det := NewRemoteDetector(server.URL, DefaultOptions())
	if !det.Ready() {
		t.Fatal("Expected ready")
	}
	if !det.Ready() {
		t.Fatal("Expected ready on second call")
	}
	if healthCalls != 1 {
		t.Errorf("Expected 1 health probe, got %d", healthCalls)
	}
}

func TestStubDetector(t *testing.T) {
	det := NewStubDetector()

	if !det.Ready() {
		t.Error("Stub must always be ready")
	}

	got, err := det.Detect(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no detections, got %d", len(got))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := det.Detect(ctx, testFrame()); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
