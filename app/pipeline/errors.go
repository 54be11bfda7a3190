package pipeline

import (
	"errors"
)

// ErrInvalidInput marks input the pipeline refuses before touching the
// network: unparseable URLs, or platform-matched URLs missing a required
// identifier. Surfaced to callers verbatim.
var ErrInvalidInput = errors.New("invalid input")
