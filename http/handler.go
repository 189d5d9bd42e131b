package http

// Handler produces a response for a request. The same handler instance may be called from
// many connections simultaneously, so any mutable state it owns must be synchronized by the
// handler itself. Failures are reported by returning a corresponding response, e.g. 5xx.
type Handler interface {
	Handle(request *Request) *Response
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(request *Request) *Response

func (h HandlerFunc) Handle(request *Request) *Response {
	return h(request)
}
