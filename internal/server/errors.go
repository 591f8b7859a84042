package server

import "errors"

// Feed-specific errors
var (
	ErrFeedClosed         = errors.New("feed is closed")
	ErrFeedAlreadyRunning = errors.New("feed is already running")
	ErrInvalidConfig      = errors.New("invalid feed configuration")
)
