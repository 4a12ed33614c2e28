package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

// ErrSlipFull signals a fifth pick on a complete ticket.
func ErrSlipFull() *AppError {
	return &AppError{Code: "SLIP_FULL", Message: fmt.Sprintf("ticket already has %d picks", ParlaySize), Status: 422}
}

// ErrGameClosed signals a pick on a game that is locked or already started.
func ErrGameClosed(match string) *AppError {
	return &AppError{Code: "GAME_CLOSED", Message: fmt.Sprintf("game %q is no longer open for picks", match), Status: 422}
}

// ErrSlipIncomplete signals a submit with fewer than ParlaySize picks.
func ErrSlipIncomplete(have int) *AppError {
	return &AppError{
		Code:    "SLIP_INCOMPLETE",
		Message: fmt.Sprintf("need %d more picks", ParlaySize-have),
		Status:  422,
	}
}

// ErrUpstream signals a failed call to the hosted backend.
func ErrUpstream(msg string, cause error) *AppError {
	return &AppError{Code: "UPSTREAM_ERROR", Message: msg, Status: 502, Cause: cause}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
