package repository

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"go-frame-analyzer/internal/storage"
)

// FrameRepository resolves frame references to decoded pixel data. It
// satisfies the analyzer's FrameProvider port.
type FrameRepository interface {
	FetchFrame(ctx context.Context, frameRef string) (image.Image, error)
	ValidateFrameRef(frameRef string) error
}

// frameRepository routes frame references to a source by scheme:
// http(s):// and azure:// are remote, anything else is a local path.
type frameRepository struct {
	local storage.FrameSource
	http  storage.FrameSource
	azure storage.FrameSource
}

// NewFrameRepository creates a repository over the given sources. The
// azure source may be nil when blob storage is not configured.
func NewFrameRepository(local, http, azure storage.FrameSource) FrameRepository {
	return &frameRepository{
		local: local,
		http:  http,
		azure: azure,
	}
}

// FetchFrame resolves and decodes a frame, translating storage errors
// into repository sentinels so callers can classify failures.
func (r *frameRepository) FetchFrame(ctx context.Context, frameRef string) (image.Image, error) {
	source, err := r.sourceFor(frameRef)
	if err != nil {
		return nil, err
	}

	img, err := source.GetFrame(ctx, frameRef)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%w: %v", ErrFrameNotFound, err)
		case errors.Is(err, storage.ErrUndecodable):
			return nil, fmt.Errorf("%w: %v", ErrFrameUndecodable, err)
		default:
			return nil, err
		}
	}

	return img, nil
}

// ValidateFrameRef checks the reference shape without fetching anything.
func (r *frameRepository) ValidateFrameRef(frameRef string) error {
	if frameRef == "" {
		return ErrInvalidFrameRef
	}
	_, err := r.sourceFor(frameRef)
	return err
}

func (r *frameRepository) sourceFor(frameRef string) (storage.FrameSource, error) {
	switch {
	case strings.HasPrefix(frameRef, "http://"), strings.HasPrefix(frameRef, "https://"):
		return r.http, nil
	case strings.HasPrefix(frameRef, "azure://"):
		if r.azure == nil {
			return nil, fmt.Errorf("%w: azure storage not configured", ErrInvalidFrameRef)
		}
		return r.azure, nil
	default:
		return r.local, nil
	}
}
