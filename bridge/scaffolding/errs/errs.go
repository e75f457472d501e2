// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/jrazmi/todolist/sdk/validation"
)

// ErrCode represents an error code in the system.
type ErrCode struct {
	value  int
	status int
	name   string
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return ec.name
}

// MarshalText implement the marshal interface for JSON conversions.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.name), nil
}

// Set of error codes the bridge layer can return.
var (
	InvalidArgument = ErrCode{value: 3, status: http.StatusBadRequest, name: "invalid_argument"}
	NotFound        = ErrCode{value: 5, status: http.StatusNotFound, name: "not_found"}
	Internal        = ErrCode{value: 13, status: http.StatusInternalServerError, name: "internal"}
	Unprocessable   = ErrCode{value: 18, status: http.StatusUnprocessableEntity, name: "unprocessable_entity"}
	InternalOnlyLog = ErrCode{value: 19, status: http.StatusInternalServerError, name: "internal_only_log"}
)

// Error represents an error in the system.
type Error struct {
	Code     ErrCode                 `json:"code"`
	Message  string                  `json:"message"`
	Fields   []validation.FieldError `json:"fields,omitempty"`
	FuncName string                  `json:"-"`
	FileName string                  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	e := Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}

	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		e.Message = "validation failed"
		e.Fields = fe
	}

	return &e
}

// Newf constructs an error based on a error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewFieldErrors constructs an Unprocessable error carrying one field error.
func NewFieldErrors(field string, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     Unprocessable,
		Message:  "validation failed",
		Fields:   validation.NewFieldError(field, err),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface so the
// web framework can use the correct http status.
func (e *Error) HTTPStatus() int {
	return e.Code.status
}

// Equal provides support for the go-cmp package and testing.
func (e *Error) Equal(e2 *Error) bool {
	return e.Code == e2.Code && e.Message == e2.Message
}
