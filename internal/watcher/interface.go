package watcher

import "context"

// Watcher runs the pipeline for every recording dropped into a directory.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one new recording.
type EventHandler func(ctx context.Context, filePath string) error
