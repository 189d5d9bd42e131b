package minihttp

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/internal/server"
	"github.com/indigo-web/minihttp/pipeline"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport"
	"github.com/rs/zerolog"
)

type hooks struct {
	OnStart, OnStop func()
}

// App is the entrypoint: it holds the handlers and settings, and runs the server.
type App struct {
	addr     string
	cfg      *config.Config
	logger   zerolog.Logger
	registry *router.Registry
	onError  pipeline.ErrorSink[transport.Client]
	hooks    hooks
	mu       sync.Mutex
	tcp      *transport.TCP
}

// New returns a new App instance, which will listen on the address.
func New(addr string) *App {
	return &App{
		addr:     addr,
		cfg:      config.Default(),
		logger:   zerolog.New(os.Stderr).With().Timestamp().Logger(),
		registry: router.New(),
	}
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the default logger, writing to stderr.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// Handle binds the handler to the method. Passing nil unbinds it. Panics if the method is
// unknown or the app is already serving.
func (a *App) Handle(m method.Method, handler http.Handler) *App {
	if err := a.registry.Register(m, handler); err != nil {
		panic(err)
	}

	return a
}

// OnError is called on every failed request, after it was logged and, if possible, answered.
func (a *App) OnError(cb func(client transport.Client, stage pipeline.Stage, err error)) *App {
	a.onError = pipeline.SinkFunc[transport.Client](cb)
	return a
}

// NotifyOnStart calls the callback at the moment, when the server is ready to accept connections.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed that
// no connections are being served at that moment.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve binds the address and serves connections until Stop is called. Handlers can no longer
// be changed after that.
func (a *App) Serve() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	tcp := transport.NewTCP(a.cfg.NET)
	if err := tcp.Bind(a.addr); err != nil {
		return err
	}

	a.mu.Lock()
	a.tcp = tcp
	a.mu.Unlock()

	a.registry.Seal()
	srv := server.New(a.cfg, a.registry, a.logger, a.onError)

	a.logger.Info().
		Stringer("addr", tcp.Addr()).
		Stringers("methods", stringers(a.registry.Bound())).
		Msg("listening")
	callIfNotNil(a.hooks.OnStart)

	err := srv.Serve(tcp)

	a.logger.Info().Err(err).Msg("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Addr returns the address the app is listening on, or nil if it isn't serving yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tcp == nil {
		return nil
	}

	return a.tcp.Addr()
}

// Stop stops accepting new connections. Serve returns as soon as the connections being served
// at the moment are done.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tcp == nil {
		return nil
	}

	return a.tcp.Stop()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

func stringers(methods []method.Method) []fmt.Stringer {
	s := make([]fmt.Stringer, len(methods))
	for i, m := range methods {
		s[i] = m
	}

	return s
}
