package status

import (
	"fmt"
	"net/http"
)

// Code classifies the outcome of a service operation.
type Code int

const (
	None Code = iota
	NotFound
	Internal
	Failed
	AlreadyExists
	Forbidden
	ModelStateNotValid
)

// String returns the stable wire name of the code.
func (c Code) String() string {
	switch c {
	case None:
		return "none"
	case NotFound:
		return "not_found"
	case Internal:
		return "internal"
	case Failed:
		return "failed"
	case AlreadyExists:
		return "already_exists"
	case Forbidden:
		return "forbidden"
	case ModelStateNotValid:
		return "model_state_not_valid"
	default:
		return "internal"
	}
}

// HTTPStatus maps the code to its HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case None:
		return http.StatusOK
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists:
		return http.StatusConflict
	case Forbidden:
		return http.StatusForbidden
	case ModelStateNotValid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Result is returned by every service operation. Errors never cross the
// service boundary as raw Go errors; they are converted here.
type Result struct {
	Success bool   `json:"success"`
	Code    Code   `json:"code"`
	Message string `json:"message,omitempty"`
}

// OK returns a successful result.
func OK() Result {
	return Result{Success: true, Code: None}
}

// Error returns a failed result with the given code and message.
func Error(code Code, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}

// Errorf returns a failed result with a formatted message.
func Errorf(code Code, format string, args ...interface{}) Result {
	return Result{Success: false, Code: code, Message: fmt.Sprintf(format, args...)}
}
