package translator

import (
	"errors"
	"fmt"
	"net"
)

// UnavailableError reports that the model service at BaseURL could not be
// reached at the transport level. It is produced by structural inspection
// of the underlying error, never by matching message text.
type UnavailableError struct {
	BaseURL string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("model service unreachable at %s: %v (start the local server, e.g. `ollama serve`)", e.BaseURL, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err wraps an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// classify wraps connectivity failures in an UnavailableError and passes
// everything else through unchanged. Connectivity means the contact with
// the server itself failed: dial refused, host unresolvable, or a timeout
// before a response arrived.
func classify(err error, baseURL string) error {
	if err == nil {
		return nil
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return &UnavailableError{BaseURL: baseURL, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &UnavailableError{BaseURL: baseURL, Err: err}
	}
	return err
}
