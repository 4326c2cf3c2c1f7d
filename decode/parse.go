// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"math"

	"github.com/creachadair/jsax"
	"go4.org/mem"
	"golang.org/x/exp/constraints"
)

// A KeyFunc routes one object member to a decision, usually a Push of a
// parser for the member's value. The key is a borrowed view, valid only for
// the duration of the call; copy it if it must be retained.
type KeyFunc[T any] func(key mem.RO, v *T) jsax.Decision

// An ElemFunc makes a handler that parses one list element into *v.
type ElemFunc[E any] func(v *E) jsax.Handler

// String returns a decision that parses a single string value into *v.
// The text is copied out of the token before the handler returns.
func String(v *string) jsax.Decision {
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		if tok.Kind() != jsax.String {
			return jsax.Failf("got %v, want string", tok.Kind())
		}
		*v = tok.Text().StringCopy()
		return jsax.Done()
	})
}

// Bool returns a decision that parses a single boolean value into *v.
func Bool(v *bool) jsax.Decision {
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		if tok.Kind() != jsax.Bool {
			return jsax.Failf("got %v, want boolean", tok.Kind())
		}
		*v = tok.Bool()
		return jsax.Done()
	})
}

// Int returns a decision that parses a single integer value into *v.
// Integer tokens of either sign are accepted if their value fits the range
// of T, as are strings holding a base-10 integer. Float tokens are rejected:
// a fractional number is never silently truncated.
func Int[T constraints.Signed](v *T) jsax.Decision {
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		switch tok.Kind() {
		case jsax.Int:
			return putInt(v, tok.Int())
		case jsax.Uint:
			u := tok.Uint()
			if u > math.MaxInt64 {
				return jsax.Failf("value %d out of range for integer", u)
			}
			return putInt(v, int64(u))
		case jsax.String:
			n, err := mem.ParseInt(tok.Text(), 10, 64)
			if err != nil {
				return jsax.Failf("invalid integer %q", tok.Text().StringCopy())
			}
			return putInt(v, n)
		case jsax.Float:
			return jsax.Failf("cannot use number %g as integer", tok.Float())
		default:
			return jsax.Failf("got %v, want integer", tok.Kind())
		}
	})
}

// Uint returns a decision that parses a single unsigned integer value into
// *v. Negative values and float tokens are rejected; strings holding a
// base-10 unsigned integer are accepted.
func Uint[T constraints.Unsigned](v *T) jsax.Decision {
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		switch tok.Kind() {
		case jsax.Uint:
			return putUint(v, tok.Uint())
		case jsax.Int:
			n := tok.Int()
			if n < 0 {
				return jsax.Failf("value %d out of range for unsigned integer", n)
			}
			return putUint(v, uint64(n))
		case jsax.String:
			n, err := mem.ParseUint(tok.Text(), 10, 64)
			if err != nil {
				return jsax.Failf("invalid unsigned integer %q", tok.Text().StringCopy())
			}
			return putUint(v, n)
		case jsax.Float:
			return jsax.Failf("cannot use number %g as unsigned integer", tok.Float())
		default:
			return jsax.Failf("got %v, want unsigned integer", tok.Kind())
		}
	})
}

// Float returns a decision that parses a single floating-point value into
// *v. Integer tokens of either sign and strings holding a number are also
// accepted.
func Float[T constraints.Float](v *T) jsax.Decision {
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		switch tok.Kind() {
		case jsax.Float:
			return putFloat(v, tok.Float())
		case jsax.Int:
			return putFloat(v, float64(tok.Int()))
		case jsax.Uint:
			return putFloat(v, float64(tok.Uint()))
		case jsax.String:
			f, err := mem.ParseFloat(tok.Text(), 64)
			if err != nil {
				return jsax.Failf("invalid number %q", tok.Text().StringCopy())
			}
			return putFloat(v, f)
		default:
			return jsax.Failf("got %v, want number", tok.Kind())
		}
	})
}

// putInt stores n into *v if it round-trips through T unchanged, meaning n
// is within the representable range of T.
func putInt[T constraints.Signed](v *T, n int64) jsax.Decision {
	t := T(n)
	if int64(t) != n {
		return jsax.Failf("value %d out of range", n)
	}
	*v = t
	return jsax.Done()
}

func putUint[T constraints.Unsigned](v *T, n uint64) jsax.Decision {
	t := T(n)
	if uint64(t) != n {
		return jsax.Failf("value %d out of range", n)
	}
	*v = t
	return jsax.Done()
}

func putFloat[T constraints.Float](v *T, f float64) jsax.Decision {
	t := T(f)
	if math.IsInf(float64(t), 0) && !math.IsInf(f, 0) {
		return jsax.Failf("value %g out of range", f)
	}
	*v = t
	return jsax.Done()
}

// Value is the set of destination types Scalar can dispatch on.
type Value interface {
	bool | string |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Scalar returns a decision that parses a single scalar value into *v,
// choosing the parser from the static type of the destination: String for a
// *string, Bool for a *bool, and the matching numeric parser otherwise.
// Call sites never need to name a specific scalar parser.
func Scalar[T Value](v *T) jsax.Decision {
	switch v := any(v).(type) {
	case *bool:
		return Bool(v)
	case *string:
		return String(v)
	case *int:
		return Int(v)
	case *int8:
		return Int(v)
	case *int16:
		return Int(v)
	case *int32:
		return Int(v)
	case *int64:
		return Int(v)
	case *uint:
		return Uint(v)
	case *uint8:
		return Uint(v)
	case *uint16:
		return Uint(v)
	case *uint32:
		return Uint(v)
	case *uint64:
		return Uint(v)
	case *float32:
		return Float(v)
	case *float64:
		return Float(v)
	}
	panic("unreachable: Value is a closed constraint")
}

// Skip returns a decision that consumes and discards the next value of any
// shape: a single scalar, or an entire object or array subtree. A close
// token with no matching open is malformed input and fails the parse.
func Skip() jsax.Decision {
	depth := 0
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		switch tok.Kind() {
		case jsax.BeginObject, jsax.BeginArray:
			depth++
			return jsax.Continue()
		case jsax.EndObject, jsax.EndArray:
			depth--
			if depth < 0 {
				return jsax.Failf("unbalanced %v", tok.Kind())
			} else if depth == 0 {
				return jsax.Done()
			}
			return jsax.Continue()
		default:
			if depth == 0 {
				return jsax.Done() // a bare scalar is a complete value
			}
			return jsax.Continue()
		}
	})
}

// Object returns a decision that parses a single object into *v, routing
// each member key through bind. The handler requires a BeginObject token
// first, then alternates keys and values until the matching EndObject.
func Object[T any](v *T, bind KeyFunc[T]) jsax.Decision {
	return jsax.Push(ObjectHandler(v, bind))
}

// ObjectHandler returns the handler form of [Object], for use as a root
// handler or a list element handler.
func ObjectHandler[T any](v *T, bind KeyFunc[T]) jsax.Handler {
	started := false
	return func(tok jsax.Token) jsax.Decision {
		if !started {
			if tok.Kind() != jsax.BeginObject {
				return jsax.Failf("got %v, want %v", tok.Kind(), jsax.BeginObject)
			}
			started = true
			return jsax.Continue()
		}
		switch tok.Kind() {
		case jsax.Key:
			return bind(tok.Text(), v)
		case jsax.EndObject:
			return jsax.Done()
		default:
			return jsax.Failf("got %v, want key or %v", tok.Kind(), jsax.EndObject)
		}
	}
}

// List returns a decision that parses a single array into *list. For each
// element, a zero value is appended to the list and elem is called with its
// address to make the element's handler; the element's first token is
// replayed to that handler, so the list handler itself never consumes any
// token belonging to an element.
func List[S ~[]E, E any](list *S, elem ElemFunc[E]) jsax.Decision {
	started := false
	return jsax.Push(func(tok jsax.Token) jsax.Decision {
		if !started {
			if tok.Kind() != jsax.BeginArray {
				return jsax.Failf("got %v, want %v", tok.Kind(), jsax.BeginArray)
			}
			started = true
			return jsax.Continue()
		}
		if tok.Kind() == jsax.EndArray {
			return jsax.Done()
		}
		var zero E
		*list = append(*list, zero)
		return jsax.Replay(elem(&(*list)[len(*list)-1]))
	})
}

// ObjectList returns a decision that parses an array of objects into *list,
// routing the keys of each element object through bind.
func ObjectList[S ~[]E, E any](list *S, bind KeyFunc[E]) jsax.Decision {
	return List(list, func(v *E) jsax.Handler { return ObjectHandler(v, bind) })
}

// ScalarElem adapts [Scalar] for use as a list element function:
//
//	var names []string
//	decode.List(&names, decode.ScalarElem[string]())
func ScalarElem[E Value]() ElemFunc[E] {
	return func(v *E) jsax.Handler { return Scalar(v).Handler() }
}
