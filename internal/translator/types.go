// Package translator sends rendered prompts to a local language-model
// service and returns cleaned completion text. Transport-level failures
// are classified into a distinguished unavailable error so callers can
// tell "the server is down" apart from "the call failed".
package translator

import "context"

// Completer is the language-model service boundary: one prompt in, one
// completion out. Implementations make a single best-effort network call
// per Complete; retries, if any, belong to the caller.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
}
