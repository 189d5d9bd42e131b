package status

import "errors"

// HTTPError is an error carrying the status code it must be answered with. The struct is
// comparable, therefore instances work as sentinels with errors.Is.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf extracts the code of the first HTTPError in the chain. If there's none,
// the fallback is returned.
func CodeOf(err error, fallback Code) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return fallback
}

var (
	ErrMalformedMessage   = NewError(BadRequest, "malformed message")
	ErrUnknownMethod      = NewError(BadRequest, "unknown request method")
	ErrUnsupportedVersion = NewError(HTTPVersionNotSupported, "unsupported protocol version")
	ErrMessageTooLarge    = NewError(RequestEntityTooLarge, "message is too large")
	ErrRequestTimeout     = NewError(RequestTimeout, "request timeout")

	ErrBadRequest          = NewError(BadRequest, "bad request")
	ErrNotFound            = NewError(NotFound, "not found")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
	ErrNotImplemented      = NewError(NotImplemented, "not implemented")
)
