package chains

import "fmt"

// InvokeError represents a model invocation failure
type InvokeError struct {
	Chain string
	Cause error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("%s chain invocation failed: %v", e.Chain, e.Cause)
}

func (e *InvokeError) Unwrap() error {
	return e.Cause
}

// ParseError represents a failure to parse the model's structured output
type ParseError struct {
	Chain string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s chain returned unparseable output: %v", e.Chain, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// OutputError represents structured output that parsed but violated the
// chain's contract (empty sections, out-of-vocabulary tags)
type OutputError struct {
	Chain   string
	Message string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s chain output invalid: %s", e.Chain, e.Message)
}
