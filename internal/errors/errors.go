package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrUnavailable  = errors.New("store unavailable")
	ErrWriteFailed  = errors.New("store write failed")
	ErrUploadFailed = errors.New("upload failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// StoreUnavailableError indicates a collection could not be read.
type StoreUnavailableError struct {
	Collection string
	Cause      error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("collection %s unavailable: %v", e.Collection, e.Cause)
}

func (e *StoreUnavailableError) Unwrap() error {
	return ErrUnavailable
}

// StoreWriteError indicates a create/update/delete against the document
// store failed, including writes targeting a missing document.
type StoreWriteError struct {
	Op         string // "create", "update", "delete"
	Collection string
	ID         string // Empty for create
	Cause      error
}

func (e *StoreWriteError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Collection, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Cause)
}

func (e *StoreWriteError) Unwrap() error {
	return ErrWriteFailed
}

// UploadError indicates a blob could not be stored.
type UploadError struct {
	Collection string
	Name       string
	Cause      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s for %s: %v", e.Name, e.Collection, e.Cause)
}

func (e *UploadError) Unwrap() error {
	return ErrUploadFailed
}

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "card", "collection", "site"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper constructors for common cases

func Unavailable(collection string, cause error) error {
	return &StoreUnavailableError{Collection: collection, Cause: cause}
}

func WriteFailed(op, collection, id string, cause error) error {
	return &StoreWriteError{Op: op, Collection: collection, ID: id, Cause: cause}
}

func Upload(collection, name string, cause error) error {
	return &UploadError{Collection: collection, Name: name, Cause: cause}
}

func CardNotFound(id string) error {
	return &NotFoundError{Resource: "card", ID: id}
}

func CollectionNotFound(name string) error {
	return &NotFoundError{Resource: "collection", ID: name}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUnavailable checks if an error is a read-side store failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsWriteFailed checks if an error is a write-side store failure.
func IsWriteFailed(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}

// IsUpload checks if an error is a blob upload failure.
func IsUpload(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
