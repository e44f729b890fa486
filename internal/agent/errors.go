package agent

import "fmt"

// MalformedAgentOutput reports that the model's final answer could not be
// parsed into a coaching result. RawText carries the unmodified model output
// for diagnostics; it is never shown to the end user.
type MalformedAgentOutput struct {
	RawText string
	Cause   error
}

func (e *MalformedAgentOutput) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed agent output: %v", e.Cause)
	}
	return "malformed agent output"
}

func (e *MalformedAgentOutput) Unwrap() error {
	return e.Cause
}
