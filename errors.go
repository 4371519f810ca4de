package groqqy

import "errors"

// Sentinel errors for tool resolution and argument handling. They are
// carried inside [ToolOutcome] values and never propagate out of the
// executor; use [errors.Is] to classify an outcome's failure.
var (
	ErrToolNotFound = errors.New("tool not found")
	ErrInvalidArgs  = errors.New("invalid tool arguments")
)

// ErrNoChoices is returned by providers when the backend response
// carries no choices at all. Unlike tool failures this is a provider
// error and aborts the run.
var ErrNoChoices = errors.New("model response contained no choices")
