package solarsystem

import "errors"

// Domain errors. None of these is fatal to a running simulation.
var (
	// ErrDegenerateGeometry is returned when a measurement needs a nonzero distance and got none.
	ErrDegenerateGeometry = errors.New("solarsystem: degenerate geometry (zero distance)")

	// ErrInvalidConfiguration is returned when a body or configuration value is out of its valid range.
	ErrInvalidConfiguration = errors.New("solarsystem: invalid configuration")

	// ErrInvalidRate is returned when the clock rate is scaled by a zero or non-finite factor.
	ErrInvalidRate = errors.New("solarsystem: invalid rate factor")

	// ErrUnknownBody is returned when a body name does not match any simulated body.
	ErrUnknownBody = errors.New("solarsystem: unknown body")

	// ErrUnknownCommand is returned when an input command cannot be parsed.
	ErrUnknownCommand = errors.New("solarsystem: unknown command")

	// ErrQuit is returned by Apply when the quit command is received.
	ErrQuit = errors.New("solarsystem: quit requested")
)
