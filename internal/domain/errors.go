package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrPlaybackRejected indicates the media backend refused to start playback
	ErrPlaybackRejected = errors.New("playback start rejected")

	// ErrUnsupportedSource indicates the clip source cannot be decoded
	ErrUnsupportedSource = errors.New("unsupported media source")

	// ErrEmptyCatalog indicates the catalog contains no clips
	ErrEmptyCatalog = errors.New("catalog has no clips")

	// ErrNoPlayer indicates no external player could be found
	ErrNoPlayer = errors.New("no media player found")
)
