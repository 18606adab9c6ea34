package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is detected client-side before any request is issued.
type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// OperationError means the server received the request and rejected it
// (non-2xx). Code and Details carry the server's structured payload when
// one was present.
type OperationError struct {
	Status  int
	Code    string
	Message string
	Details []ValidationDetail
}

func (e *OperationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("operation failed (status %d): %s", e.Status, e.Message)
}

func NewOperationError(status int, code, message string, details ...ValidationDetail) *OperationError {
	return &OperationError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func IsOperationError(err error) (*OperationError, bool) {
	if oe, ok := err.(*OperationError); ok {
		return oe, true
	}
	return nil, false
}

// TransportError means no response was received at all: the request never
// reached the server or the connection failed before a status arrived.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{
		Message: message,
		Cause:   cause,
	}
}

func IsTransportError(err error) (*TransportError, bool) {
	if te, ok := err.(*TransportError); ok {
		return te, true
	}
	return nil, false
}
