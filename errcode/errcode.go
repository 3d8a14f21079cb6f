package errcode

// Code is a stable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Configuration errors, detected before any hardware mutation.
	InvalidPinPairing Code = "invalid_pin_pairing"
	Unsupported       Code = "unsupported"
	TooManyChannels   Code = "too_many_channels"
	InvalidParams     Code = "invalid_params"

	// Hardware exhaustion / playback setup.
	DMABusy          Code = "dma_busy"
	AllocationFailed Code = "allocation_failed"
	SourceError      Code = "source_error"
	NoSequencer      Code = "no_sequencer"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
