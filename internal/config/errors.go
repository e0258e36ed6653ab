package config

import "errors"

var (
	// ErrInvalidConfig indicates the settings file is not valid JSON.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("watcher closed")
)
