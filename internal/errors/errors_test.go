package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "name", Message: "name is required"},
		{Field: "stockQuantity", Message: "must not be negative"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := NewValidationError("bad input")

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.NotNil(t, ve)
	assert.Equal(t, "bad input", ve.Message)
}

func TestValidationError_IsValidationError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	ve, ok := IsValidationError(err)
	assert.False(t, ok)
	assert.Nil(t, ve)
}

func TestNotFoundError_Creation(t *testing.T) {
	message := "product not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("raw material not found")

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
	assert.Equal(t, "raw material not found", nfe.Message)
}

func TestConflictError_IsConflictError(t *testing.T) {
	err := NewConflictError("raw material already linked")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "raw material already linked", ce.Message)

	_, ok = IsConflictError(errors.New("other"))
	assert.False(t, ok)
}

func TestOperationError_Creation(t *testing.T) {
	err := NewOperationError(409, "CONFLICT", "raw material already linked", ValidationDetail{
		Field:   "rawMaterialId",
		Message: "already linked to this product",
	})

	assert.NotNil(t, err)
	assert.Equal(t, 409, err.Status)
	assert.Equal(t, "CONFLICT", err.Code)
	assert.Len(t, err.Details, 1)
	assert.Contains(t, err.Error(), "CONFLICT")
	assert.Contains(t, err.Error(), "409")
}

func TestOperationError_WithoutCode(t *testing.T) {
	err := NewOperationError(500, "", "internal server error")

	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal server error")
}

func TestOperationError_IsOperationError(t *testing.T) {
	var err error = NewOperationError(400, "VALIDATION_ERROR", "bad request")

	oe, ok := IsOperationError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, oe.Status)

	_, ok = IsOperationError(errors.New("other"))
	assert.False(t, ok)
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("request failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestTransportError_NilCause(t *testing.T) {
	err := NewTransportError("no response received", nil)

	assert.Equal(t, "no response received", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestTransportError_IsTransportError(t *testing.T) {
	err := NewTransportError("timeout", nil)

	te, ok := IsTransportError(err)
	assert.True(t, ok)
	assert.NotNil(t, te)

	_, ok = IsTransportError(errors.New("other"))
	assert.False(t, ok)
}
