package errors

import "fmt"

// ErrorType represents different types of errors that can occur
// when talking to the VK or Yandex.Disk APIs.
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeConflict    ErrorType = "conflict"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeAPI         ErrorType = "api"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents an API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// TypeFromStatus maps an HTTP status code to an error type
func TypeFromStatus(statusCode int) ErrorType {
	switch {
	case statusCode == 0:
		return ErrorTypeNetwork
	case statusCode == 401 || statusCode == 403:
		return ErrorTypeAuth
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode == 409:
		return ErrorTypeConflict
	case statusCode >= 500:
		return ErrorTypeServerError
	case statusCode >= 400:
		return ErrorTypeUnknown
	default:
		return ErrorTypeUnknown
	}
}
