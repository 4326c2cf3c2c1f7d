// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jsax"
	"github.com/creachadair/jtree"
	"go4.org/mem"
)

// A Parser carries the options for parsing JSON input. The zero value is
// ready for use with strict JSON.
type Parser struct {
	// Allow line and block comments in the input.
	AllowComments bool

	// Allow trailing commas in objects and arrays.
	AllowTrailingCommas bool

	// If set, OnError is invoked exactly once with the first error reported
	// by a handler. The error is returned from Parse either way.
	OnError func(error)
}

// Parse reads a single JSON value from r, delivering its tokens to a
// dispatcher rooted at root. It returns nil if the value was fully consumed
// and root reported completion. The root handler must validate the
// outermost structure itself; no object frame is implied.
//
// On failure the destination objects captured by root may have been
// partially populated; a non-nil error means their contents must not be
// treated as a parsed value.
func (p Parser) Parse(r io.Reader, root jsax.Handler) error {
	d := jsax.NewDispatcher(root)
	if p.OnError != nil {
		d.OnError(p.OnError)
	}
	st := jtree.NewStream(r)
	st.AllowComments(p.AllowComments)
	st.AllowTrailingCommas(p.AllowTrailingCommas)
	if err := st.ParseOne(tokens{d}); err == io.EOF {
		return fmt.Errorf("parse: %w", io.ErrUnexpectedEOF)
	} else if err != nil {
		return err
	}
	if !d.Done() {
		return errors.New("parse: incomplete value")
	}
	return nil
}

// Parse reads a single JSON value from r with default options, delivering
// its tokens to a dispatcher rooted at root.
func Parse(r io.Reader, root jsax.Handler) error { return Parser{}.Parse(r, root) }

// Into parses a single JSON object from r into *v, routing each member key
// through bind.
func Into[T any](r io.Reader, v *T, bind KeyFunc[T]) error {
	return Parse(r, ObjectHandler(v, bind))
}

// New parses a single JSON object from r into a freshly allocated T, routing
// each member key through bind. In case of error the partial value is
// returned along with the error.
func New[T any](r io.Reader, bind KeyFunc[T]) (T, error) {
	var v T
	err := Into(r, &v, bind)
	return v, err
}

// tokens implements jtree.Handler, translating each tokenizer callback into
// one jsax.Token and one dispatch step. Returning the dispatcher's error
// from a callback stops the tokenizer, mirroring how a Fail decision stops
// dispatch.
type tokens struct {
	d *jsax.Dispatcher
}

func (t tokens) send(tok jsax.Token) error {
	if t.d.Dispatch(tok) {
		return nil
	}
	return t.d.Err()
}

func (t tokens) BeginObject(jtree.Anchor) error { return t.send(jsax.Mark(jsax.BeginObject)) }
func (t tokens) EndObject(jtree.Anchor) error   { return t.send(jsax.Mark(jsax.EndObject)) }
func (t tokens) BeginArray(jtree.Anchor) error  { return t.send(jsax.Mark(jsax.BeginArray)) }
func (t tokens) EndArray(jtree.Anchor) error    { return t.send(jsax.Mark(jsax.EndArray)) }
func (t tokens) EndMember(jtree.Anchor) error   { return nil }
func (t tokens) EndOfInput(jtree.Anchor)        {}

func (t tokens) BeginMember(loc jtree.Anchor) error {
	key, err := jtree.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	return t.send(jsax.KeyToken(mem.B(key)))
}

func (t tokens) Value(loc jtree.Anchor) error {
	switch loc.Token() {
	case jtree.String:
		text, err := jtree.Unquote(loc.Text())
		if err != nil {
			return fmt.Errorf("invalid string: %w", err)
		}
		return t.send(jsax.StringToken(mem.B(text)))

	case jtree.Integer:
		// Keep the sign information the tokenizer already has: non-negative
		// integers are delivered unsigned, negative ones signed. Integers
		// that do not fit in 64 bits fall back to a number token.
		text := mem.B(loc.Text())
		if loc.Text()[0] == '-' {
			if v, err := mem.ParseInt(text, 10, 64); err == nil {
				return t.send(jsax.IntToken(v))
			}
		} else if v, err := mem.ParseUint(text, 10, 64); err == nil {
			return t.send(jsax.UintToken(v))
		}
		fallthrough

	case jtree.Number:
		v, err := mem.ParseFloat(mem.B(loc.Text()), 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		return t.send(jsax.FloatToken(v))

	case jtree.True:
		return t.send(jsax.BoolToken(true))
	case jtree.False:
		return t.send(jsax.BoolToken(false))
	case jtree.Null:
		return t.send(jsax.Mark(jsax.Null))
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
}
