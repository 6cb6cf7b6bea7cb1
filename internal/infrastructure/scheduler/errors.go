package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrSweepFailed is returned when an expiry sweep could not complete
	ErrSweepFailed = errors.New("subscription expiry sweep failed")
)
