package convention

import (
	"fmt"
	"strings"
)

// ValidationError is returned when an answer does not normalize to an
// acceptable value. Interactive hosts re-prompt on it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConfigurationError is returned when the grammar cannot be loaded. It is fatal.
type ConfigurationError struct {
	Resource string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NoMatchError reports a commit message that does not follow the convention.
// Parse never returns it; Check does, for callers that asked for validation.
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string {
	header := e.Message
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	return fmt.Sprintf("commit message does not follow the convention: %q", header)
}
