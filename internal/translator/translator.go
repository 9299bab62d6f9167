package translator

import (
	"context"

	"github.com/vkozyrev/gemmatran/internal/postprocess"
)

// Translator turns one rendered prompt into cleaned translated text using
// a Completer. One call, one network request; no retries.
type Translator struct {
	svc Completer
}

// New wraps svc in a Translator.
func New(svc Completer) *Translator {
	return &Translator{svc: svc}
}

// Translate sends prompt to the service and returns the response with LLM
// artifacts and surrounding whitespace stripped. Connectivity failures
// surface as *UnavailableError; everything else propagates as-is.
func (t *Translator) Translate(ctx context.Context, prompt string) (string, error) {
	out, err := t.svc.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return postprocess.Clean(out), nil
}
