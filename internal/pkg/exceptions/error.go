package exceptions

import (
	"fmt"
	"runtime"
)

// Error codes surfaced in the response body so clients and sagas can
// discriminate outcomes without parsing messages.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeSlotUnavailable    = "SLOT_UNAVAILABLE"
	CodeSlotLockConflict   = "SLOT_LOCK_CONFLICT"
	CodeLockedSlotNotFound = "LOCKED_SLOT_NOT_FOUND"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeTimeout            = "TIMEOUT"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternal           = "INTERNAL"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	Code          string   `json:"code,omitempty"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

// HasCode reports whether err is a CustomError carrying the given code.
func HasCode(err error, code string) bool {
	customErr, ok := err.(*CustomError)
	return ok && customErr.Code == code
}

func BuildNewCustomError(err error, statusCode int, code, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         "unknown",
			Line:         0,
			FunctionName: "unknown",
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
