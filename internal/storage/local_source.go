package storage

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FrameSource retrieves decoded frames by reference.
type FrameSource interface {
	GetFrame(ctx context.Context, frameRef string) (image.Image, error)
}

// LocalFrameSource reads frames from the local filesystem under a fixed
// root directory. Extracted video frames land here in the worker setup.
type LocalFrameSource struct {
	root string
}

// NewLocalFrameSource creates a local frame source rooted at dir.
func NewLocalFrameSource(dir string) *LocalFrameSource {
	return &LocalFrameSource{root: dir}
}

func (s *LocalFrameSource) GetFrame(ctx context.Context, frameRef string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := frameRef
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}

	// References must stay inside the configured root.
	cleanRoot := filepath.Clean(s.root)
	cleanPath := filepath.Clean(path)
	if cleanPath != cleanRoot && !strings.HasPrefix(cleanPath, cleanRoot+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s escapes frame root", ErrNotFound, frameRef)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, frameRef)
		}
		return nil, fmt.Errorf("open frame %s: %w", frameRef, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUndecodable, frameRef, err)
	}

	return img, nil
}
