package pkg

import "fmt"

// AppError is the domain error carried from usecases up to the HTTP layer.
// Handlers map sentinel errors into AppErrors and serialize ToHTTPError.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// HTTPError is the JSON error body returned by the API.
type HTTPError struct {
	Code   string `json:"code"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (e *AppError) ToHTTPError() HTTPError {
	detail := ""
	if e.Err != nil {
		detail = e.Err.Error()
	}
	return HTTPError{Code: e.Code, Error: e.Message, Detail: detail}
}
