package server

import (
	"errors"
	"io"
	"net"
	"os"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/pipeline"
	"github.com/indigo-web/minihttp/transport"
	"github.com/rs/zerolog"
)

// rejectingSink answers failed iterations with an error response, if the connection is still
// worth writing to, and then forwards the error further.
type rejectingSink struct {
	server *Server
	next   []pipeline.ErrorSink[transport.Client]
}

func newRejectingSink(server *Server, next ...pipeline.ErrorSink[transport.Client]) rejectingSink {
	return rejectingSink{
		server: server,
		next:   next,
	}
}

func (r rejectingSink) ReceiverError(client transport.Client, err error) {
	if !peerGone(err) {
		_ = r.server.write(client, rejection(err))
	}

	for _, sink := range r.next {
		sink.ReceiverError(client, err)
	}
}

func (r rejectingSink) HandlerError(client transport.Client, err error) {
	_ = r.server.write(client, http.Code(status.InternalServerError))

	for _, sink := range r.next {
		sink.HandlerError(client, err)
	}
}

func (r rejectingSink) ResponderError(client transport.Client, err error) {
	for _, sink := range r.next {
		sink.ResponderError(client, err)
	}
}

// rejection builds the response to a failed receive.
func rejection(err error) *http.Response {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		err = status.ErrRequestTimeout
	}

	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		return http.NewResponse().Error(httpErr)
	}

	return http.Code(status.BadRequest)
}

// peerGone reports whether the error means the other side has nothing more to say.
func peerGone(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

// LogSink logs every failure. Closed peers are expected and therefore logged only as debug.
func LogSink(logger zerolog.Logger) pipeline.ErrorSink[transport.Client] {
	return pipeline.SinkFunc[transport.Client](func(client transport.Client, stage pipeline.Stage, err error) {
		var event *zerolog.Event

		switch {
		case stage == pipeline.StageReceive && peerGone(err):
			event = logger.Debug()
		case stage == pipeline.StageRespond:
			event = logger.Error()
		default:
			event = logger.Warn()
		}

		event.
			Str("conn", client.ID()).
			Stringer("remote", client.Remote()).
			Stringer("stage", stage).
			Err(err).
			Msg("iteration failed")
	})
}
