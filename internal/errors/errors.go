package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Business errors
	ErrPoolNotFound          = errors.New("pool not found")
	ErrPoolFull              = errors.New("pool is at capacity")
	ErrAlreadyJoined         = errors.New("rider already joined this pool")
	ErrNotAMember            = errors.New("rider is not a passenger of this pool")
	ErrDriverAlreadyAssigned = errors.New("pool already has a driver assigned")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrStorageWrite          = errors.New("pool storage write failed")
)

// APIError represents a structured API error
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common API errors
func NotFound(resource string) *APIError {
	return NewAPIError("not_found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *APIError {
	return NewAPIError("bad_request", message, http.StatusBadRequest)
}

func InternalError(message string) *APIError {
	return NewAPIError("internal_error", message, http.StatusInternalServerError)
}

func PoolNotFound() *APIError {
	return NewAPIError("pool_not_found", "no pool exists with that id", http.StatusNotFound)
}

func PoolFull() *APIError {
	return NewAPIError("pool_full", "this pool has no seats left", http.StatusConflict)
}

func AlreadyJoined() *APIError {
	return NewAPIError("already_joined", "you are already a passenger of this pool", http.StatusConflict)
}

func NotAMember() *APIError {
	return NewAPIError("not_a_member", "you are not a passenger of this pool", http.StatusConflict)
}

func DriverAlreadyAssigned() *APIError {
	return NewAPIError("driver_already_assigned", "this pool has already been accepted by a driver", http.StatusConflict)
}

func StorageWriteFailed() *APIError {
	return NewAPIError("storage_write_failed", "could not persist the pool collection", http.StatusServiceUnavailable)
}
