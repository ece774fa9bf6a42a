package common

import "errors"

// ErrorKind classifies analysis failures so callers can react without
// string matching.
type ErrorKind string

const (
	// KindInvalidConfiguration marks a configuration parameter outside its
	// valid range, detected before any computation starts.
	KindInvalidConfiguration ErrorKind = "invalid_configuration"

	// KindUnsupportedInput marks waveform input the analyzer cannot process:
	// empty signal, unreadable container, bad channel layout.
	KindUnsupportedInput ErrorKind = "unsupported_input"

	// KindResourceLimit marks a request whose FFT length or STFT grid would
	// exceed the configured memory ceiling. Lowering the frequency
	// resolution is the usual fix.
	KindResourceLimit ErrorKind = "resource_limit"
)

// AnalysisError is the error type returned by the analysis pipeline.
type AnalysisError struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AnalysisError) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewConfigError reports an invalid configuration value, naming the field.
func NewConfigError(field, message string) *AnalysisError {
	return &AnalysisError{Kind: KindInvalidConfiguration, Field: field, Message: message}
}

// NewInputError reports unusable waveform input.
func NewInputError(message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: KindUnsupportedInput, Message: message, Cause: cause}
}

// NewResourceError reports a computation that would exceed a resource ceiling.
func NewResourceError(message string) *AnalysisError {
	return &AnalysisError{Kind: KindResourceLimit, Message: message}
}

// IsKind reports whether err is an AnalysisError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}
