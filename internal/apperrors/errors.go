package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is known but may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnverified indicates the identity has not completed verification.
// No ledger data is loaded or mutated for such identities.
var ErrUnverified = errors.New("identity not verified")

// ErrLedgerNotLoaded indicates the user's ledger snapshot could not be loaded,
// so no operation may run against it yet.
var ErrLedgerNotLoaded = errors.New("ledger not loaded")

// ErrAIQuotaExceeded indicates the AI provider rejected the call for quota reasons.
var ErrAIQuotaExceeded = errors.New("ai quota exceeded")

// ErrAIParse indicates the AI provider answered with nothing usable.
var ErrAIParse = errors.New("ai response could not be parsed")

// ErrExternal indicates a failure in an external collaborator (storage, AI, identity).
var ErrExternal = errors.New("external service error")

// AppError is an error carrying an HTTP status code and a client-safe message.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

func NewGatewayTimeoutError(message string) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, ErrExternal)
}
