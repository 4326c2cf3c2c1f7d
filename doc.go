// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jsax implements an event-driven parser-combinator engine for
// streaming document formats.
//
// An external tokenizer delivers a document as a flat sequence of [Token]
// values. A [Dispatcher] routes each token to the [Handler] on top of its
// stack; the handler returns a [Decision] that tells the dispatcher whether
// to keep the handler, pop it, push a new one, replay the current token to a
// new one, or stop with an error. Composing handlers this way parses a
// document directly into typed destinations, one token at a time, without an
// intermediate tree.
//
// # Tokens
//
// Each Token has a [Kind] and, for value-carrying kinds, a payload:
//
//	Kind                    | Payload
//	----------------------- | ----------------------------
//	Null                    | none
//	Bool                    | bool
//	Int                     | int64
//	Uint                    | uint64
//	Float                   | float64
//	String, Key             | borrowed text view (mem.RO)
//	BeginObject, EndObject  | none
//	BeginArray, EndArray    | none
//
// The integer kinds are deliberately kept separate rather than collapsed
// into one numeric kind: the tokenizer knows the sign and precision of each
// number it reads, and a consumer may need to distinguish an unsigned value
// near the 64-bit boundary from a signed one.
//
// Text payloads borrow memory owned by the tokenizer. They are valid only
// for the duration of the Dispatch call that delivered them; a handler that
// needs the text afterward must copy it before returning.
//
// # Dispatch
//
// Construct a dispatcher from a root handler and feed it tokens:
//
//	d := jsax.NewDispatcher(root)
//	for _, tok := range tokens {
//	    if !d.Dispatch(tok) {
//	        return d.Err()
//	    }
//	}
//
// Dispatch applies the handler's decision to the stack before the next
// token is considered, so tokens are always delivered in input order. The
// first Fail decision ends the parse: the error sink (see
// [Dispatcher.OnError]) runs once, Err records the failure, and delivering
// any further token is a programming error that panics.
//
// Handlers are written by hand only rarely. The decode subpackage provides
// combinators for scalars, objects, lists, and skipping, along with entry
// points that drive a dispatcher from JSON input; the yaml subpackage does
// the same for YAML input.
package jsax
