package pipeline

type (
	// Receiver produces a request out of a connection.
	Receiver[C, Req any] interface {
		Receive(conn C) (Req, error)
	}

	// Handler turns a request into a response.
	Handler[Req, Res any] interface {
		Handle(req Req) (Res, error)
	}

	// Responder delivers the response back to the connection.
	Responder[C, Res any] interface {
		Respond(conn C, res Res) error
	}

	// ErrorSink is notified about every failed iteration, once per iteration. It has no way to
	// affect the control flow.
	ErrorSink[C any] interface {
		ReceiverError(conn C, err error)
		HandlerError(conn C, err error)
		ResponderError(conn C, err error)
	}

	// Acceptor produces connections until it fails. An error matching net.ErrClosed is
	// considered a graceful stop.
	Acceptor[C any] interface {
		Accept() (C, error)
	}
)

type ReceiverFunc[C, Req any] func(conn C) (Req, error)

func (r ReceiverFunc[C, Req]) Receive(conn C) (Req, error) {
	return r(conn)
}

type HandlerFunc[Req, Res any] func(req Req) (Res, error)

func (h HandlerFunc[Req, Res]) Handle(req Req) (Res, error) {
	return h(req)
}

type ResponderFunc[C, Res any] func(conn C, res Res) error

func (r ResponderFunc[C, Res]) Respond(conn C, res Res) error {
	return r(conn, res)
}

type AcceptorFunc[C any] func() (C, error)

func (a AcceptorFunc[C]) Accept() (C, error) {
	return a()
}

// SinkFunc collapses all three sink entries into a single function, distinguishing them by
// the stage.
type SinkFunc[C any] func(conn C, stage Stage, err error)

func (s SinkFunc[C]) ReceiverError(conn C, err error) {
	s(conn, StageReceive, err)
}

func (s SinkFunc[C]) HandlerError(conn C, err error) {
	s(conn, StageHandle, err)
}

func (s SinkFunc[C]) ResponderError(conn C, err error) {
	s(conn, StageRespond, err)
}

// NopSink discards all the errors.
type NopSink[C any] struct{}

func (NopSink[C]) ReceiverError(C, error)  {}
func (NopSink[C]) HandlerError(C, error)   {}
func (NopSink[C]) ResponderError(C, error) {}
