package conversation

import "errors"

// ErrNoArtifact is returned when delivery is requested but the session holds
// no generated schedule.
var ErrNoArtifact = errors.New("conversation: no generated schedule in session")

// ValidationError captures a rejected user input. The engine recovers from it
// locally by re-emitting the current prompt with a correction notice; it is
// never surfaced as a crash.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed: " + v.Field
}
