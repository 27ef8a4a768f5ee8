package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	ErrValidation  = "VALIDATION"
	ErrConflict    = "CONFLICT"
	ErrNotFound    = "NOT FOUND"
	ErrAuth        = "UNAUTHORIZED"
	ErrPersistence = "PERSISTENCE"
	ErrSession     = "SESSION"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// HasCode reports whether err is, or wraps, an ErrorResponse carrying code.
func HasCode(err error, code string) bool {
	var resp ErrorResponse
	if stderrors.As(err, &resp) {
		return resp.Code == code
	}
	return false
}
