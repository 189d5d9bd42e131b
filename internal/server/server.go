package server

import (
	"errors"
	"maps"
	"slices"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/internal/protocol/http1"
	"github.com/indigo-web/minihttp/kv"
	"github.com/indigo-web/minihttp/pipeline"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport"
	"github.com/rs/zerolog"
)

// ErrNilResponse is reported when a handler returned no response at all.
var ErrNilResponse = errors.New("handler returned nil response")

// Exchange is a handled request along with the response to it.
type Exchange struct {
	Request  *http.Request
	Response *http.Response
}

// Server is the HTTP/1.1 composition of the pipeline stages: receiving and parsing, dispatching
// and serializing with writing.
type Server struct {
	cfg      *config.Config
	registry *router.Registry
	logger   zerolog.Logger
	defaults []kv.Pair
	pipeline *pipeline.Pipeline[transport.Client, *http.Request, Exchange]
}

// New composes the pipeline. Every failure is first remedied with an error response where it
// makes sense, then logged and finally passed to the onError sink, if it's not nil.
func New(
	cfg *config.Config,
	registry *router.Registry,
	logger zerolog.Logger,
	onError pipeline.ErrorSink[transport.Client],
) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		defaults: sortedPairs(cfg.Headers.Default),
	}

	sinks := []pipeline.ErrorSink[transport.Client]{LogSink(logger)}
	if onError != nil {
		sinks = append(sinks, onError)
	}

	sink := newRejectingSink(s, sinks...)
	s.pipeline = pipeline.New[transport.Client, *http.Request, Exchange](s, s, s, sink).
		Workers(cfg.Pipeline.Workers, cfg.Pipeline.QueueSize)

	return s
}

// Serve runs the pipeline over the connections produced by the acceptor until it's closed.
func (s *Server) Serve(acceptor pipeline.Acceptor[transport.Client]) error {
	return s.pipeline.Run(acceptor)
}

// Iterate serves a single client synchronously. The client is left open.
func (s *Server) Iterate(client transport.Client) pipeline.State {
	return s.pipeline.Iterate(client)
}

// Receive reads and parses a request.
func (s *Server) Receive(client transport.Client) (*http.Request, error) {
	data, err := transport.Receive(client, s.cfg.NET.ReadBufferSize, s.cfg.NET.MaxMessageSize)
	if err != nil {
		return nil, err
	}

	request, err := http1.Parse(data)
	if err != nil {
		return nil, err
	}

	request.Remote = client.Remote()

	return request, nil
}

// Handle dispatches the request to a handler.
func (s *Server) Handle(request *http.Request) (Exchange, error) {
	response := s.registry.Dispatch(request)
	if response == nil {
		return Exchange{}, ErrNilResponse
	}

	return Exchange{Request: request, Response: response}, nil
}

// Respond serializes the response and writes it to the client.
func (s *Server) Respond(client transport.Client, exchange Exchange) error {
	response := s.withDefaults(exchange.Response)
	if err := s.write(client, response); err != nil {
		return err
	}

	s.logger.Debug().
		Str("conn", client.ID()).
		Stringer("method", exchange.Request.Method).
		Str("path", exchange.Request.Path).
		Int("code", int(response.Expose().Code)).
		Msg("served")

	return nil
}

func (s *Server) write(client transport.Client, response *http.Response) error {
	return transport.Send(client, http1.Serialize(response))
}

// withDefaults returns the response with default headers added, unless they're already set.
// The passed response is never mutated.
func (s *Server) withDefaults(response *http.Response) *http.Response {
	fields := response.Expose()

	var missing []kv.Pair
	for _, pair := range s.defaults {
		if !fields.Headers.HasFold(pair.Key) {
			missing = append(missing, pair)
		}
	}

	if len(missing) == 0 {
		return response
	}

	clone := http.NewResponse().
		Code(fields.Code).
		Reason(fields.Reason).
		Bytes(fields.Body)

	for key, value := range fields.Headers.Pairs() {
		clone.Header(key, value)
	}

	for _, pair := range missing {
		clone.Header(pair.Key, pair.Value)
	}

	return clone
}

func sortedPairs(m map[string]string) []kv.Pair {
	pairs := make([]kv.Pair, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, kv.Pair{Key: key, Value: m[key]})
	}

	return pairs
}
