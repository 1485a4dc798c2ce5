package domain

import "errors"

// Transport-level failures reported by the outbound clients.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("upstream error")
)

// Vendor failure taxonomy. The price pipeline treats all three the same way:
// the vendor contributes no offers for that call.
var (
	ErrNetwork = errors.New("network failure")
	ErrParse   = errors.New("unexpected response shape")
	ErrNoMatch = errors.New("no match")
)

// ErrInvalidArgument marks caller input the service rejects before calling out.
var ErrInvalidArgument = errors.New("invalid argument")
