package practicum

import "errors"

// Failure classes for a poll cycle. The poller matches these with errors.Is
// to pick the operator-facing message; the order it checks them in is fixed
// there, not here.
var (
	// ErrEndpointUnreachable: the HTTP exchange itself failed (DNS, refused
	// connection, timeout). No status code is available.
	ErrEndpointUnreachable = errors.New("endpoint unreachable")

	// ErrEndpointServer: the endpoint answered HTTP 500.
	ErrEndpointServer = errors.New("endpoint internal error")

	// ErrEndpointRequest: the endpoint answered with any status other than
	// 200 or 500. The wrapped message carries the code.
	ErrEndpointRequest = errors.New("endpoint request failed")

	// ErrMalformedResponse: the payload is not a JSON object or the
	// homeworks key is missing or not a list.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidTimestamp: current_date is missing or not an integer.
	ErrInvalidTimestamp = errors.New("invalid current_date")

	// ErrMalformedSubmission: a homework record is not an object or lacks
	// a required string field.
	ErrMalformedSubmission = errors.New("malformed homework record")

	// ErrUnknownStatus: the homework record carries a status outside the
	// recognized vocabulary.
	ErrUnknownStatus = errors.New("unknown homework status")

	// ErrNoStatusChange: the poll succeeded and nothing changed since the
	// cursor. Normal steady state, not a fault.
	ErrNoStatusChange = errors.New("no status change")
)
