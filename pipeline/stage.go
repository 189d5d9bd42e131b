package pipeline

import "fmt"

// Stage identifies which part of an iteration produced a failure.
type Stage uint8

const (
	StageReceive Stage = iota
	StageHandle
	StageRespond
)

func (s Stage) String() string {
	switch s {
	case StageReceive:
		return "receiver"
	case StageHandle:
		return "handler"
	case StageRespond:
		return "responder"
	default:
		return "unknown"
	}
}

// State is a position of a single iteration. Done and Error are terminal.
type State uint8

const (
	Receiving State = iota
	Handling
	Responding
	Done
	Error
)

func (s State) String() string {
	switch s {
	case Receiving:
		return "receiving"
	case Handling:
		return "handling"
	case Responding:
		return "responding"
	case Done:
		return "done"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// PanicError is reported to the sink when a stage panics. The panic is confined to the iteration
// it happened in.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap returns the panic value if it is an error itself.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}
