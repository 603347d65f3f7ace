// Package engine defines the OCR-engine collaborator contract and the
// adapters that implement it. The extraction pipeline never depends on a
// concrete engine; anything that can turn a document image or scan into raw
// text plugs in here.
package engine

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks an engine that is not configured or cannot run in
// this environment. The pipeline treats it as a state transition, not a
// hard failure.
var ErrUnavailable = errors.New("engine unavailable")

// Engine recognizes text in a document image or scan. Any failure,
// cancellation, or empty output is treated by the caller as insufficient
// and advances the engine state machine.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (string, error)
}

// Input identifies the document to recognize.
type Input struct {
	// Path to the image or scan on disk.
	Path string
}

// Error wraps an engine failure with the engine name and operation.
type Error struct {
	Engine string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Engine, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
