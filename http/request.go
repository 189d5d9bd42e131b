package http

import (
	"net"
	"strings"

	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/internal/qparams"
	"github.com/indigo-web/minihttp/kv"
)

type (
	Headers = *kv.Storage
	Params  = *kv.Storage
)

// Request represents HTTP request. It's constructed once per connection by the parser and must be
// treated as read-only by handlers, as the same value may be observed by the error sink later.
type Request struct {
	// Method is one of the nine known methods. Unknown methods never reach handlers.
	Method method.Method
	// Path is the request URI with the query string stripped, so it never contains '?'.
	Path string
	// Params are query parameters, populated from the URI before the request is handed over.
	// Values are passed verbatim after trimming, without percent-decoding.
	Params Params
	// Headers holds header pairs. Keys are case-sensitive, the last occurrence of a duplicate
	// key wins.
	Headers Headers
	// Body holds everything after the headers block. May be empty, but never nil.
	Body []byte
	// Remote holds the remote address, if known.
	Remote net.Addr
}

// NewRequest returns a new request. If the uri carries a query string, it is stripped off the
// path and parsed into Params. Further headers and parameters can be pre-populated via the
// exposed storages.
func NewRequest(m method.Method, uri string, body []byte) *Request {
	if body == nil {
		body = []byte{}
	}

	request := &Request{
		Method:  m,
		Path:    uri,
		Params:  kv.New(),
		Headers: kv.New(),
		Body:    body,
	}

	if path, query, found := strings.Cut(uri, "?"); found {
		request.Path = path
		qparams.Parse(query, qparams.Into(request.Params))
	}

	return request
}

// Header is a shorthand for Headers.Get.
func (r *Request) Header(key string) (string, bool) {
	return r.Headers.Get(key)
}

// Param is a shorthand for Params.Get.
func (r *Request) Param(key string) (string, bool) {
	return r.Params.Get(key)
}
