package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrEmptyCorpus      = fmt.Errorf("training corpus is empty")
	ErrInvalidExample   = fmt.Errorf("training example is invalid")
	ErrMissingFallback  = fmt.Errorf("response table has no unknown entry")
	ErrEmptyReplies     = fmt.Errorf("response table entry has no reply")
	ErrInvalidThreshold = fmt.Errorf("confidence threshold must be within [0,1]")
	ErrInvalidEpochs    = fmt.Errorf("epochs must be positive")
	ErrInvalidNetwork   = fmt.Errorf("network shape is invalid")

	ErrNotReady           = fmt.Errorf("pipeline is not trained yet")
	ErrTrainingInProgress = fmt.Errorf("training already in progress")
	ErrAlreadyTrained     = fmt.Errorf("pipeline already trained")
	ErrDimensionMismatch  = fmt.Errorf("dimension mismatch")
)

// ConfigurationError is fatal at startup: a pipeline built from an invalid
// corpus or response table never becomes ready.
type ConfigurationError struct {
	Reason error
	Detail string
}

func NewConfigurationError(reason error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("configuration error: %v", e.Reason)
	}
	return fmt.Sprintf("configuration error: %v: %s", e.Reason, e.Detail)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}
