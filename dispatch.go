// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import "errors"

// maxReplays bounds the number of Replay decisions a single token may chain
// through. The combinators in the decode package need at most one replay per
// token; a chain anywhere near this long means a handler is replaying into
// itself.
const maxReplays = 64

// A Dispatcher owns a stack of handlers and routes each incoming token to
// the handler on top of the stack, applying the decision the handler
// returns. A Dispatcher is seeded with a single root handler; the parse is
// complete when the root handler reports Done and the stack empties.
//
// A Dispatcher is not safe for concurrent use, and the stack is exclusively
// its own: no handler is shared across stack frames.
type Dispatcher struct {
	stk  []Handler
	sink func(error)
	err  error
}

// NewDispatcher constructs a Dispatcher whose stack holds the single root
// handler.
func NewDispatcher(root Handler) *Dispatcher {
	return &Dispatcher{stk: []Handler{root}}
}

// OnError installs f as the error sink, invoked exactly once with the first
// failure. Whether or not a sink is installed, the failure is recorded and
// reported by Err.
func (d *Dispatcher) OnError(f func(error)) { d.sink = f }

// Dispatch delivers one token to the handler atop the stack and applies its
// decision. It reports whether dispatch can continue: false means the parse
// has failed and no further tokens may be delivered.
//
// Dispatch panics if the stack is empty, which means the caller delivered a
// token after the parse already finished or failed.
func (d *Dispatcher) Dispatch(tok Token) bool {
	if len(d.stk) == 0 {
		panic("jsax: dispatch on a finished parse")
	}
	for replays := 0; ; replays++ {
		if replays > maxReplays {
			return d.fail(errors.New("replay limit exceeded"))
		}
		top := d.stk[len(d.stk)-1]
		switch dec := top(tok); dec.op {
		case OpContinue:
			return true
		case OpDone:
			d.stk = d.stk[:len(d.stk)-1]
			return true
		case OpPush:
			d.stk = append(d.stk, dec.next)
			return true
		case OpReplay:
			d.stk = append(d.stk, dec.next)
			// redeliver tok to the new top handler
		case OpFail:
			return d.fail(dec.err)
		default:
			panic("jsax: invalid decision " + dec.op.String())
		}
	}
}

// fail records the first error, reports it to the sink, and abandons the
// stack so that any further Dispatch is a caller error.
func (d *Dispatcher) fail(err error) bool {
	perr := &ParseError{Err: err}
	d.err = perr
	d.stk = nil
	if d.sink != nil {
		d.sink(perr)
	}
	return false
}

// Done reports whether the stack is empty, meaning the root handler has
// finished or the parse has failed.
func (d *Dispatcher) Done() bool { return len(d.stk) == 0 }

// Err returns the error from the first Fail decision, or nil if no failure
// has occurred. A non-nil result has concrete type [*ParseError].
func (d *Dispatcher) Err() error { return d.err }

// ParseError is the concrete type of errors reported by a Dispatcher when a
// handler rejects its input.
type ParseError struct {
	Err error // the error reported by the handler
}

// Error satisfies the error interface.
func (p *ParseError) Error() string { return "invalid input: " + p.Err.Error() }

// Unwrap supports error wrapping.
func (p *ParseError) Unwrap() error { return p.Err }
