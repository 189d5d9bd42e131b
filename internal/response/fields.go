package response

import (
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/kv"
)

// preallocHeaders is a number of headers seats reserved for every new response.
const preallocHeaders = 4

type Fields struct {
	Reason  string
	Headers *kv.Storage
	Body    []byte
	Code    status.Code
}

func NewFields() *Fields {
	return &Fields{
		Code:    status.OK,
		Reason:  status.Text(status.OK),
		Headers: kv.NewPrealloc(preallocHeaders),
	}
}

// Clear resets the fields to 200 Ok with no headers and an empty body.
func (f *Fields) Clear() {
	f.Code = status.OK
	f.Reason = status.Text(status.OK)
	f.Headers.Clear()
	f.Body = nil
}
