package repository

import "errors"

var (
	// ErrInvalidFrameRef indicates a frame reference the repository
	// cannot interpret.
	ErrInvalidFrameRef = errors.New("invalid frame reference")

	// ErrFrameNotFound indicates the frame reference resolved to nothing.
	ErrFrameNotFound = errors.New("frame not found")

	// ErrFrameUndecodable indicates the frame bytes could not be decoded
	// into a pixel grid.
	ErrFrameUndecodable = errors.New("frame could not be decoded")
)
