package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates a malformed layout expression.
	ErrSyntax = errors.New("layout: syntax error")

	// ErrUnknownType indicates a type name the grammar does not define.
	ErrUnknownType = errors.New("layout: unknown type")

	// ErrKeyType indicates a map key layout whose values cannot be map keys.
	ErrKeyType = errors.New("layout: map key type is not hashable")
)

// Parse compiles a layout expression.
//
//	type   = "?" type | "[]" type | "map[" type "]" type | "(" list ")" | scalar
//	list   = type { "," type }
//	scalar = bool | u8 | byte | i8 | u16 | i16 | u32 | i32 | u64 | i64 | f32 | f64
//	       | c64 | c128 | uvarint | varint | uint | int | uintptr | time | string | bytes
//
// A top-level list without parentheses parses as a tuple, so "u32, string"
// and "(u32, string)" are equivalent.
func Parse(expr string) (Node, error) {
	p := &parser{s: expr}
	fields, err := p.list()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errorf(ErrSyntax, "unexpected %q", p.s[p.pos])
	}
	if len(fields) == 1 {
		return fields[0], nil
	}
	return &tupleNode{fields: fields}, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) errorf(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", err, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// consume skips whitespace and then c, reporting whether c was there.
func (p *parser) consume(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.s[start:p.pos]
}

func (p *parser) list() ([]Node, error) {
	var nodes []Node
	for {
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		if !p.consume(',') {
			return nodes, nil
		}
	}
}

func (p *parser) node() (Node, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, p.errorf(ErrSyntax, "unexpected end of layout")
	}

	switch p.s[p.pos] {
	case '?':
		p.pos++
		elem, err := p.node()
		if err != nil {
			return nil, err
		}
		return &optionalNode{elem: elem}, nil
	case '[':
		p.pos++
		if !p.consume(']') {
			return nil, p.errorf(ErrSyntax, "expected ']'")
		}
		elem, err := p.node()
		if err != nil {
			return nil, err
		}
		return &sliceNode{elem: elem}, nil
	case '(':
		p.pos++
		fields, err := p.list()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, p.errorf(ErrSyntax, "expected ')'")
		}
		return &tupleNode{fields: fields}, nil
	}

	start := p.pos
	name := p.ident()
	switch name {
	case "":
		return nil, p.errorf(ErrSyntax, "unexpected %q", p.s[p.pos])
	case "map":
		if !p.consume('[') {
			return nil, p.errorf(ErrSyntax, "expected '[' after map")
		}
		keyStart := p.pos
		key, err := p.node()
		if err != nil {
			return nil, err
		}
		if !key.hashable() {
			p.pos = keyStart
			return nil, p.errorf(ErrKeyType, "%s", key)
		}
		if !p.consume(']') {
			return nil, p.errorf(ErrSyntax, "expected ']' after map key")
		}
		value, err := p.node()
		if err != nil {
			return nil, err
		}
		return &mapNode{key: key, value: value}, nil
	}

	ctor, ok := scalars[name]
	if !ok {
		p.pos = start
		return nil, p.errorf(ErrUnknownType, "%q", name)
	}
	return ctor(), nil
}
