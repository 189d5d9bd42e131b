package http

import (
	"errors"

	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/response"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 Ok,
// no headers and an empty body.
func NewResponse() *Response {
	return &Response{
		fields: response.NewFields(),
	}
}

// Code sets a Response code and the corresponding reason phrase. In case of unknown code, the
// reason phrase is left empty, so Reason should be called explicitly.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	r.fields.Reason = status.Text(code)
	return r
}

// Reason sets a custom reason phrase.
func (r *Response) Reason(reason string) *Response {
	r.fields.Reason = reason
	return r
}

// Header sets the header value. In case it already exists, the value is overridden.
func (r *Response) Header(key, value string) *Response {
	r.fields.Headers.Set(key, value)
	return r
}

// ContentType is a shorthand for Header("Content-Type", ...).
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header("Content-Type", value)
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// TryJSON receives a model (must be a pointer to the structure) and returns a new Response
// object and an error
func (r *Response) TryJSON(model any) (*Response, error) {
	r.fields.Body = nil
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error returns a response builder with an error set. If passed err is nil, nothing will happen.
// If an instance of status.HTTPError is passed, its code and message are used. Otherwise,
// 500 Internal Server Error is set with the error text as a body
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		return r.Code(httpErr.Code).String(httpErr.Message)
	}

	return r.
		Code(status.InternalServerError).
		String(err.Error())
}

// Expose returns a struct with values, filled by builder. Used mostly in internal purposes
func (r *Response) Expose() *response.Fields {
	return r.fields
}

// Clear discards everything was done with Response object before
func (r *Response) Clear() *Response {
	r.fields.Clear()
	return r
}

// Code is a predicate to NewResponse().Code(...)
func Code(code status.Code) *Response {
	return NewResponse().Code(code)
}

// String is a predicate to NewResponse().String(...)
func String(str string) *Response {
	return NewResponse().String(str)
}

// Bytes is a predicate to NewResponse().Bytes(...)
func Bytes(b []byte) *Response {
	return NewResponse().Bytes(b)
}
