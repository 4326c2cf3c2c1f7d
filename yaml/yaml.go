// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package yaml drives a jsax dispatcher from YAML input.
//
// YAML is parsed to a syntax tree first, then the first document of the
// tree is walked in order, emitting the same token protocol the decode
// package emits for JSON. Mappings become objects, sequences become arrays,
// and scalars keep the kind the YAML parser resolved for them. Anchors and
// tags are transparent; aliases are not supported.
package yaml

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jsax"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"go4.org/mem"
)

// Parse reads a single YAML document from r, delivering its tokens to a
// dispatcher rooted at root.
func Parse(r io.Reader, root jsax.Handler) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return ParseBytes(data, root)
}

// ParseBytes parses a single YAML document from data, delivering its tokens
// to a dispatcher rooted at root.
func ParseBytes(data []byte, root jsax.Handler) error {
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return err
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return fmt.Errorf("parse: %w", io.ErrUnexpectedEOF)
	}
	d := jsax.NewDispatcher(root)
	if err := walk(d, f.Docs[0].Body); err != nil {
		return err
	}
	if !d.Done() {
		return errors.New("parse: incomplete value")
	}
	return nil
}

// Into parses a single YAML mapping from r into *v, routing each member key
// through bind.
func Into[T any](r io.Reader, v *T, bind func(key mem.RO, v *T) jsax.Decision) error {
	started := false
	return Parse(r, func(tok jsax.Token) jsax.Decision {
		// Mirror decode.ObjectHandler without importing the decode package.
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
	})
}

func send(d *jsax.Dispatcher, tok jsax.Token) error {
	if d.Dispatch(tok) {
		return nil
	}
	return d.Err()
}

// walk emits the tokens for the subtree rooted at n, in input order.
func walk(d *jsax.Dispatcher, n ast.Node) error {
	switch n := n.(type) {
	case *ast.NullNode:
		return send(d, jsax.Mark(jsax.Null))
	case *ast.BoolNode:
		return send(d, jsax.BoolToken(n.Value))
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case uint64:
			return send(d, jsax.UintToken(v))
		case int64:
			return send(d, jsax.IntToken(v))
		default:
			return fmt.Errorf("unknown integer value %T", n.Value)
		}
	case *ast.FloatNode:
		return send(d, jsax.FloatToken(n.Value))
	case *ast.InfinityNode:
		return send(d, jsax.FloatToken(n.Value))
	case *ast.StringNode:
		return send(d, jsax.StringToken(mem.S(n.Value)))
	case *ast.LiteralNode:
		return send(d, jsax.StringToken(mem.S(n.Value.Value)))

	case *ast.MappingNode:
		if err := send(d, jsax.Mark(jsax.BeginObject)); err != nil {
			return err
		}
		for _, mv := range n.Values {
			if err := member(d, mv); err != nil {
				return err
			}
		}
		return send(d, jsax.Mark(jsax.EndObject))

	case *ast.MappingValueNode:
		// A mapping with a single pair is its own node shape.
		if err := send(d, jsax.Mark(jsax.BeginObject)); err != nil {
			return err
		}
		if err := member(d, n); err != nil {
			return err
		}
		return send(d, jsax.Mark(jsax.EndObject))

	case *ast.SequenceNode:
		if err := send(d, jsax.Mark(jsax.BeginArray)); err != nil {
			return err
		}
		for _, el := range n.Values {
			if err := walk(d, el); err != nil {
				return err
			}
		}
		return send(d, jsax.Mark(jsax.EndArray))

	case *ast.AnchorNode:
		return walk(d, n.Value)
	case *ast.TagNode:
		return walk(d, n.Value)
	case *ast.AliasNode:
		return errors.New("aliases are not supported")
	default:
		return fmt.Errorf("unsupported node %T", n)
	}
}

// member emits the key and value tokens for one mapping pair.
func member(d *jsax.Dispatcher, mv *ast.MappingValueNode) error {
	switch k := mv.Key.(type) {
	case *ast.StringNode:
		if err := send(d, jsax.KeyToken(mem.S(k.Value))); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported key %T", mv.Key)
	}
	return walk(d, mv.Value)
}
