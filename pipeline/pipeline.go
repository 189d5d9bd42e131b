package pipeline

import (
	"errors"
	"io"
	"net"
	"runtime/debug"
	"sync"
)

// Pipeline runs every accepted connection through a single iteration: receive, handle and
// respond. A failure at any stage skips the rest of the iteration and is reported to the sink,
// tagged by the stage. Iterations are independent of each other.
//
// All the capabilities are shared between concurrently running iterations, so they must be
// either stateless or synchronized on their own.
type Pipeline[C, Req, Res any] struct {
	receiver  Receiver[C, Req]
	handler   Handler[Req, Res]
	responder Responder[C, Res]
	sink      ErrorSink[C]
	workers   int
	queueSize int
}

func New[C, Req, Res any](
	receiver Receiver[C, Req],
	handler Handler[Req, Res],
	responder Responder[C, Res],
	sink ErrorSink[C],
) *Pipeline[C, Req, Res] {
	if sink == nil {
		sink = NopSink[C]{}
	}

	return &Pipeline[C, Req, Res]{
		receiver:  receiver,
		handler:   handler,
		responder: responder,
		sink:      sink,
	}
}

// Workers makes Run serve connections with a fixed number of goroutines instead of spawning
// a new one per connection. Up to queueSize accepted connections may wait for a free worker,
// after that the accept loop blocks. Zero workers restore the goroutine-per-connection model.
func (p *Pipeline[C, Req, Res]) Workers(n, queueSize int) *Pipeline[C, Req, Res] {
	p.workers = max(n, 0)
	if queueSize <= 0 {
		queueSize = p.workers
	}

	p.queueSize = queueSize
	return p
}

// Iterate processes a single connection synchronously and returns the terminal state, which is
// either Done or Error. Panics in stages are recovered and reported as *PanicError.
func (p *Pipeline[C, Req, Res]) Iterate(conn C) State {
	req, err := p.receive(conn)
	if err != nil {
		p.report(conn, StageReceive, err)
		return Error
	}

	res, err := p.handle(req)
	if err != nil {
		p.report(conn, StageHandle, err)
		return Error
	}

	if err = p.respond(conn, res); err != nil {
		p.report(conn, StageRespond, err)
		return Error
	}

	return Done
}

// Run accepts connections until the acceptor fails, iterating each of them concurrently.
// Connections implementing io.Closer are closed after their iteration. Run returns only after
// every started iteration has finished. If the acceptor failed with net.ErrClosed, nil is
// returned, otherwise the acceptor's error.
func (p *Pipeline[C, Req, Res]) Run(acceptor Acceptor[C]) error {
	var dispatch func(C)
	var wait func()

	if p.workers > 0 {
		pool := newPool(p.workers, p.queueSize, p.serve)
		dispatch, wait = pool.Submit, pool.Close
	} else {
		wg := new(sync.WaitGroup)
		dispatch = func(conn C) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.serve(conn)
			}()
		}
		wait = wg.Wait
	}

	for {
		conn, err := acceptor.Accept()
		if err != nil {
			wait()

			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		dispatch(conn)
	}
}

func (p *Pipeline[C, Req, Res]) serve(conn C) {
	p.Iterate(conn)

	if closer, ok := any(conn).(io.Closer); ok {
		_ = closer.Close()
	}
}

func (p *Pipeline[C, Req, Res]) receive(conn C) (req Req, err error) {
	defer recoverInto(&err)
	return p.receiver.Receive(conn)
}

func (p *Pipeline[C, Req, Res]) handle(req Req) (res Res, err error) {
	defer recoverInto(&err)
	return p.handler.Handle(req)
}

func (p *Pipeline[C, Req, Res]) respond(conn C, res Res) (err error) {
	defer recoverInto(&err)
	return p.responder.Respond(conn, res)
}

func (p *Pipeline[C, Req, Res]) report(conn C, stage Stage, err error) {
	// a panicking sink is ignored
	defer func() { _ = recover() }()

	switch stage {
	case StageReceive:
		p.sink.ReceiverError(conn, err)
	case StageHandle:
		p.sink.HandlerError(conn, err)
	case StageRespond:
		p.sink.ResponderError(conn, err)
	}
}

func recoverInto(err *error) {
	if v := recover(); v != nil {
		*err = &PanicError{
			Value: v,
			Stack: debug.Stack(),
		}
	}
}
