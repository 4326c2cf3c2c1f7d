// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import "fmt"

// A Handler is a unit of composable parsing logic. It consumes one token and
// returns a Decision telling the dispatcher what to do next. Handlers are
// stateful: they typically close over a destination pointer and their own
// progress, so a handler must be created fresh for each parse target.
type Handler func(Token) Decision

// Op enumerates the possible actions encoded by a Decision.
type Op byte

// Constants defining the valid Op values.
const (
	OpContinue Op = iota // send the next token to the same handler
	OpDone               // pop the handler; the next token goes to its parent
	OpFail               // stop parsing and report an error
	OpPush               // push a new handler; the next token goes to it
	OpReplay             // push a new handler and redeliver the current token to it
)

var opStr = [...]string{
	OpContinue: "continue",
	OpDone:     "done",
	OpFail:     "fail",
	OpPush:     "push",
	OpReplay:   "replay",
}

func (o Op) String() string {
	v := int(o)
	if v >= len(opStr) {
		return fmt.Sprintf("op(%d)", v)
	}
	return opStr[v]
}

// A Decision is the outcome a handler reports for one token. Exactly one of
// the five actions is encoded; use the constructors to build one.
// The zero Decision is Continue.
type Decision struct {
	op   Op
	err  error
	next Handler
}

// Continue reports that the same handler should receive the next token.
func Continue() Decision { return Decision{} }

// Done reports that the handler has finished and should be popped.
func Done() Decision { return Decision{op: OpDone} }

// Fail reports that parsing must stop with the given error.
func Fail(err error) Decision { return Decision{op: OpFail, err: err} }

// Failf reports that parsing must stop, with a formatted error message.
func Failf(msg string, args ...any) Decision { return Fail(fmt.Errorf(msg, args...)) }

// Push reports that h should be pushed onto the stack to receive the next
// token.
func Push(h Handler) Decision { return Decision{op: OpPush, next: h} }

// Replay reports that h should be pushed onto the stack and the current
// token redelivered to it, instead of advancing to the next token. This is
// how a collection handler hands the first token of a new element to a
// freshly made element handler.
func Replay(h Handler) Decision { return Decision{op: OpReplay, next: h} }

// Op returns the action encoded by d.
func (d Decision) Op() Op { return d.op }

// Err returns the error carried by a Fail decision, or nil.
func (d Decision) Err() error { return d.err }

// Handler returns the handler carried by a Push or Replay decision, or nil.
func (d Decision) Handler() Handler { return d.next }
