package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"sync"
	"time"

	"go-frame-analyzer/pkg/models"
)

// RemoteDetector delegates inference to a sidecar model server over HTTP.
// The frame is posted as JPEG to <endpoint>/detect; the server answers
// with a JSON detection list.
type RemoteDetector struct {
	endpoint string
	client   *http.Client
	opts     Options

	mu    sync.Mutex
	ready bool
}

type remoteDetectResponse struct {
	Detections []models.Detection `json:"detections"`
}

// NewRemoteDetector creates a client for a remote detection service.
func NewRemoteDetector(endpoint string, opts Options) *RemoteDetector {
	return &RemoteDetector{
		endpoint: endpoint,
		opts:     opts,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func (d *RemoteDetector) Detect(ctx context.Context, img image.Image) ([]models.Detection, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint+"/detect", &buf)
	if err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detection service returned status %d", resp.StatusCode)
	}

	var decoded remoteDetectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode detection response: %w", err)
	}

	// The sidecar may apply its own threshold; filter again so local and
	// remote backends behave identically.
	detections := make([]models.Detection, 0, len(decoded.Detections))
	for _, det := range decoded.Detections {
		if det.Confidence >= d.opts.ConfidenceThreshold {
			detections = append(detections, det)
		}
	}

	return detections, nil
}

// Ready probes the sidecar's health endpoint once and caches success.
func (d *RemoteDetector) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ready {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	d.ready = resp.StatusCode == http.StatusOK
	return d.ready
}
