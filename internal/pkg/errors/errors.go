package errors

import (
	"fmt"
)

// AppError is a typed failure attached to a single unit of work (one track
// file or one region). The batch never aborts on an AppError; callers
// aggregate them next to successful results.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Unit    string `json:"unit,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	switch {
	case e.Unit != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (%s): %v", e.Code, e.Message, e.Unit, e.Err)
	case e.Unit != "":
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Unit)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on the code, so errors.Is(err, ErrUnknownRegion) works for
// instances carrying a unit and a cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}
