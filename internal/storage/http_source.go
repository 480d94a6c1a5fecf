package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"
)

// HTTPFrameSource fetches frames over HTTP(S) with a tuned client and
// bounded retries for transient failures.
type HTTPFrameSource struct {
	client *http.Client
}

// NewHTTPFrameSource creates an HTTP frame source.
func NewHTTPFrameSource() *HTTPFrameSource {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPFrameSource{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

func (s *HTTPFrameSource) GetFrame(ctx context.Context, frameRef string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, frameRef, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid frame URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, */*")
	req.Header.Set("User-Agent", "Go-Frame-Analyzer/1.0")

	resp, err := s.fetchWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUndecodable, frameRef, err)
	}

	return img, nil
}

// fetchWithRetry issues the request up to 3 times. Client errors are
// never retried; 404 maps to the not-found sentinel.
func (s *HTTPFrameSource) fetchWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URL)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			resp.Body.Close()
			return nil, fmt.Errorf("client error fetching frame: status %d", resp.StatusCode)
		default:
			resp.Body.Close()
			lastErr = fmt.Errorf("server error fetching frame: status %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("failed to fetch frame after 3 attempts: %w", lastErr)
}
