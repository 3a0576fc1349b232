package models

import "errors"

// Error categories. Callers match them with errors.Is; the concrete
// error wraps one of these with the detail.
var (
	// ErrInputRejected is a local validation failure. No state was changed
	// and nothing was sent.
	ErrInputRejected = errors.New("input rejected")

	// ErrAuthFailure means the login call did not produce a session.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrUnrecognizedEvent marks an inbound frame that does not decode to
	// any known event.
	ErrUnrecognizedEvent = errors.New("unrecognized event")

	// ErrTransportFault covers disconnects and failed sends.
	ErrTransportFault = errors.New("transport fault")
)
