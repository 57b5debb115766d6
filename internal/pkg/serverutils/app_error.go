package serverutils

import (
	"errors"
	"fmt"
)

// Error kinds for the chat pipeline. Anything failing before the response
// stream begins surfaces as one of these; after the stream begins, failures
// travel inside the stream as an error event instead.
const (
	KindValidation    = "VALIDATION_ERROR"
	KindConfiguration = "CONFIGURATION_ERROR"
	KindProvider      = "PROVIDER_ERROR"
	KindRetrieval     = "RETRIEVAL_ERROR"
)

type AppError struct {
	Kind       string
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, StatusCode: 400, Message: message}
}

func NewConfigurationError(message string, err error) *AppError {
	return &AppError{Kind: KindConfiguration, StatusCode: 500, Message: message, Err: err}
}

func NewProviderError(message string, err error) *AppError {
	return &AppError{Kind: KindProvider, StatusCode: 500, Message: message, Err: err}
}

func NewRetrievalError(message string, err error) *AppError {
	return &AppError{Kind: KindRetrieval, StatusCode: 500, Message: message, Err: err}
}

// AsAppError unwraps err to an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
