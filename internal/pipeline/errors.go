package pipeline

import "errors"

// Error taxonomy for the pipeline. Wrapped with fmt.Errorf("...: %w", ...)
// at call sites so callers can still errors.Is against these sentinels.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrIO                   = errors.New("i/o error")
	ErrShortInput           = errors.New("input shorter than the expected authentication tag")
	ErrAuthenticationFailure = errors.New("authentication failure: output already emitted is tainted")
	ErrInternal             = errors.New("internal error")
)
