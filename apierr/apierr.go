// Package apierr defines the error kinds the service surfaces and helpers to
// classify wrapped errors. Every external failure is terminal for its request;
// there is no retry or backoff policy beyond the client's single
// refresh-on-401 retry.
package apierr

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrAuthentication means the credential grant was not approved. Fatal at startup.
	ErrAuthentication = errors.New("authentication failed")

	// ErrClientInput covers unparseable dates, unresolvable destinations and
	// non-numeric budgets. Surfaced to the caller as a 400.
	ErrClientInput = errors.New("invalid client input")

	// ErrUpstream means the commerce API call itself failed. Surfaced with
	// upstream-provided detail.
	ErrUpstream = errors.New("upstream request failed")
)

// ClientInput marks err as a client-input error, preserving its message.
func ClientInput(msg string) error {
	return errors.Mark(errors.New(msg), ErrClientInput)
}

// Upstream wraps an upstream failure with context.
func Upstream(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrUpstream)
}

func IsAuthentication(err error) bool { return errors.Is(err, ErrAuthentication) }
func IsClientInput(err error) bool    { return errors.Is(err, ErrClientInput) }
func IsUpstream(err error) bool       { return errors.Is(err, ErrUpstream) }
