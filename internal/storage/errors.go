package storage

import "errors"

var (
	// ErrNotFound indicates the frame reference resolved to nothing.
	ErrNotFound = errors.New("frame not found")

	// ErrUndecodable indicates the fetched bytes are not a decodable image.
	ErrUndecodable = errors.New("frame could not be decoded")
)
