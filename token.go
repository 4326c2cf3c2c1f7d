// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"fmt"
	"math"

	"go4.org/mem"
)

// Kind is the type of a lexical token delivered by an event source.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid token, or a tokenizer parse error
	Null                    // constant: null
	Bool                    // boolean value
	Int                     // signed integer value
	Uint                    // unsigned integer value
	Float                   // floating-point value
	String                  // string value
	BeginObject             // open of an object
	EndObject               // close of an object
	BeginArray              // open of an array
	EndArray                // close of an array
	Key                     // object member key
)

var kindStr = [...]string{
	Invalid:     "invalid token",
	Null:        "null",
	Bool:        "boolean",
	Int:         "integer",
	Uint:        "unsigned integer",
	Float:       "number",
	String:      "string",
	BeginObject: `"{"`,
	EndObject:   `"}"`,
	BeginArray:  `"["`,
	EndArray:    `"]"`,
	Key:         "key",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// hasText reports whether tokens of kind k carry a string payload.
func (k Kind) hasText() bool { return k == String || k == Key }

// hasValue reports whether tokens of kind k carry any payload.
func (k Kind) hasValue() bool {
	switch k {
	case Bool, Int, Uint, Float, String, Key:
		return true
	}
	return false
}

// A Token is a single lexical event from an input document, tagged with a
// kind and an optional payload determined by the kind. Tokens are immutable
// and cheap to copy.
//
// The text payload of a String or Key token is a view of memory owned by the
// event source, and is only valid for the duration of the dispatch call that
// delivered the token. A handler that needs the text beyond that call must
// copy it before returning (see [mem.RO.StringCopy]).
type Token struct {
	kind Kind
	num  uint64 // bool, integer, or float bits, per kind
	str  mem.RO
}

// Mark returns a Token of kind k carrying no payload. It panics if k is a
// kind that requires a payload.
func Mark(k Kind) Token {
	if k.hasValue() {
		panic(fmt.Sprintf("jsax: kind %v requires a value", k))
	}
	return Token{kind: k}
}

// BoolToken returns a Bool token with the given value.
func BoolToken(v bool) Token {
	var num uint64
	if v {
		num = 1
	}
	return Token{kind: Bool, num: num}
}

// IntToken returns an Int token with the given value.
func IntToken(v int64) Token { return Token{kind: Int, num: uint64(v)} }

// UintToken returns a Uint token with the given value.
func UintToken(v uint64) Token { return Token{kind: Uint, num: v} }

// FloatToken returns a Float token with the given value.
func FloatToken(v float64) Token { return Token{kind: Float, num: math.Float64bits(v)} }

// StringToken returns a String token viewing the given text.
func StringToken(text mem.RO) Token { return Token{kind: String, str: text} }

// KeyToken returns a Key token viewing the given text.
func KeyToken(text mem.RO) Token { return Token{kind: Key, str: text} }

// Kind returns the kind of the token.
func (t Token) Kind() Kind { return t.kind }

// Bool returns the payload of a Bool token. It panics for other kinds.
func (t Token) Bool() bool { t.check(Bool); return t.num != 0 }

// Int returns the payload of an Int token. It panics for other kinds.
func (t Token) Int() int64 { t.check(Int); return int64(t.num) }

// Uint returns the payload of a Uint token. It panics for other kinds.
func (t Token) Uint() uint64 { t.check(Uint); return t.num }

// Float returns the payload of a Float token. It panics for other kinds.
func (t Token) Float() float64 { t.check(Float); return math.Float64frombits(t.num) }

// Text returns a view of the text of a String or Key token. It panics for
// other kinds. The view is only valid until the dispatch call that delivered
// the token returns; copy it if it must be retained.
func (t Token) Text() mem.RO {
	if !t.kind.hasText() {
		panic(fmt.Sprintf("jsax: no text on kind %v", t.kind))
	}
	return t.str
}

func (t Token) check(want Kind) {
	if t.kind != want {
		panic(fmt.Sprintf("jsax: token is %v, not %v", t.kind, want))
	}
}

func (t Token) String() string {
	switch t.kind {
	case Bool:
		return fmt.Sprintf("%v <%v>", t.kind, t.num != 0)
	case Int:
		return fmt.Sprintf("%v <%d>", t.kind, int64(t.num))
	case Uint:
		return fmt.Sprintf("%v <%d>", t.kind, t.num)
	case Float:
		return fmt.Sprintf("%v <%g>", t.kind, math.Float64frombits(t.num))
	case String, Key:
		return fmt.Sprintf("%v <%s>", t.kind, t.str.StringCopy())
	}
	return t.kind.String()
}
