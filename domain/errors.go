package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyWindow means no transactions fell inside the analysis window.
// Callers can recover by widening the window or falling back to curated
// offers; it is never swallowed into an empty profile.
var ErrEmptyWindow = errors.New("no transactions in the analysis window")

// ErrEncoderUnavailable wraps embedding-service failures. The engine does
// not retry; retry policy belongs to the caller.
var ErrEncoderUnavailable = errors.New("embedding encoder unavailable")

// ErrVendorNotFound is returned when a vendor_id has no catalog row.
var ErrVendorNotFound = errors.New("vendor not found")

// SchemaError is fatal: the input data is missing a required field.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input data is missing required field %q", e.Field)
}

func NewSchemaError(field string) error {
	return &SchemaError{Field: field}
}
