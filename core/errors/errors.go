// Package errors defines the error taxonomy shared by the reconciliation core.
//
// Every typed error maps onto one sentinel so callers can branch with errors.Is
// from the standard library without caring about the concrete type:
//
//   - ValidationError   -> ErrValidation   (bad natural key on a row; always a skip)
//   - ConsistencyError  -> ErrConsistency  (duplicate or gapped priority ranks)
//   - LookupMiss        -> ErrLookupMiss   (vendor or product not found, invalid slug)
//   - BackingStoreError -> ErrBackingStore (database or object storage unavailable)
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that can never be processed as given.
	ErrValidation = errors.New("validation failed")

	// ErrConsistency marks a detected inconsistency in the priority sequence.
	ErrConsistency = errors.New("priority ranks inconsistent")

	// ErrLookupMiss marks a lookup that found nothing.
	ErrLookupMiss = errors.New("lookup miss")

	// ErrBackingStore marks a failure of the database or object storage.
	ErrBackingStore = errors.New("backing store failure")

	// ErrInvalidSlug is returned by the top-level rank and decision API when the
	// vendor identifier is not syntactically usable.
	ErrInvalidSlug error = &LookupMiss{Kind: "vendor", Reason: invalidSlugReason}
)

const invalidSlugReason = "invalid vendor slug"

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConsistencyError carries the issues found by a consistency check.
type ConsistencyError struct {
	Issues []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("priority ranks inconsistent: %d issue(s)", len(e.Issues))
}

// Is implements errors.Is support.
func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

// LookupMiss reports a missing vendor or product, or a key that cannot be looked up.
type LookupMiss struct {
	Kind   string
	Key    string
	Reason string
}

func (e *LookupMiss) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s lookup %q: %s", e.Kind, e.Key, e.Reason)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Is implements errors.Is support. Any LookupMiss created with the invalid slug
// reason also matches ErrInvalidSlug.
func (e *LookupMiss) Is(target error) bool {
	if target == ErrLookupMiss {
		return true
	}
	return target == ErrInvalidSlug && e.Reason == invalidSlugReason
}

// NewInvalidSlug creates a LookupMiss for a syntactically invalid vendor slug.
func NewInvalidSlug(slug string) *LookupMiss {
	return &LookupMiss{Kind: "vendor", Key: slug, Reason: invalidSlugReason}
}

// BackingStoreError wraps a failed storage operation.
type BackingStoreError struct {
	Op  string
	Err error
}

func (e *BackingStoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *BackingStoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *BackingStoreError) Is(target error) bool {
	return target == ErrBackingStore
}

// NewBackingStoreError wraps err as a BackingStoreError. A nil err yields nil.
func NewBackingStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackingStoreError{Op: op, Err: err}
}
