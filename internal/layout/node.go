package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/oy3o/benc"
)

// Node is a compiled layout: a codec for values whose Go type is only known at
// run time. Every Node is a benc.Unmarshaler[any] and a benc.Skipper, so the
// root package's container functions drive nested nodes directly.
type Node interface {
	Unmarshal(r *benc.BytesReader) (any, error)
	Skip(r *benc.BytesReader) error
	// String returns the layout expression the node was parsed from, in canonical form.
	String() string
	// hashable reports whether decoded values can be map keys.
	hashable() bool
}

type scalarNode struct {
	name      string
	unmarshal func(r *benc.BytesReader) (any, error)
	skipper   benc.Skipper
	keyable   bool
}

func scalar[T any](name string, c benc.Codec[T]) *scalarNode {
	return &scalarNode{
		name: name,
		unmarshal: func(r *benc.BytesReader) (any, error) {
			v, err := c.Unmarshal(r)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		skipper: c,
		keyable: true,
	}
}

func (n *scalarNode) Unmarshal(r *benc.BytesReader) (any, error) { return n.unmarshal(r) }
func (n *scalarNode) Skip(r *benc.BytesReader) error { return n.skipper.Skip(r) }
func (n *scalarNode) String() string { return n.name }
func (n *scalarNode) hashable() bool { return n.keyable }

// scalars maps every scalar type name to a constructor. Sized integers resolve
// through the codec registry, so they follow whatever the registry considers
// the default wire form for the Go type.
var scalars = map[string]func() *scalarNode{
	"bool":    func() *scalarNode { return scalar("bool", benc.MustLookup[bool]()) },
	"u8":      func() *scalarNode { return scalar("u8", benc.MustLookup[uint8]()) },
	"byte":    func() *scalarNode { return scalar("u8", benc.MustLookup[byte]()) },
	"i8":      func() *scalarNode { return scalar("i8", benc.MustLookup[int8]()) },
	"u16":     func() *scalarNode { return scalar("u16", benc.MustLookup[uint16]()) },
	"i16":     func() *scalarNode { return scalar("i16", benc.MustLookup[int16]()) },
	"u32":     func() *scalarNode { return scalar("u32", benc.MustLookup[uint32]()) },
	"i32":     func() *scalarNode { return scalar("i32", benc.MustLookup[int32]()) },
	"u64":     func() *scalarNode { return scalar("u64", benc.MustLookup[uint64]()) },
	"i64":     func() *scalarNode { return scalar("i64", benc.MustLookup[int64]()) },
	"f32":     func() *scalarNode { return scalar("f32", benc.MustLookup[float32]()) },
	"f64":     func() *scalarNode { return scalar("f64", benc.MustLookup[float64]()) },
	"c64":     func() *scalarNode { return scalar("c64", benc.MustLookup[complex64]()) },
	"c128":    func() *scalarNode { return scalar("c128", benc.MustLookup[complex128]()) },
	"uvarint": func() *scalarNode { return scalar("uvarint", benc.Uvarint) },
	"varint":  func() *scalarNode { return scalar("varint", benc.Varint) },
	"uint":    func() *scalarNode { return scalar("uint", benc.MustLookup[uint]()) },
	"int":     func() *scalarNode { return scalar("int", benc.MustLookup[int]()) },
	"uintptr": func() *scalarNode { return scalar("uintptr", benc.MustLookup[uintptr]()) },
	"time":    func() *scalarNode { return scalar("time", benc.MustLookup[time.Time]()) },
	"string":  func() *scalarNode { return scalar("string", benc.MustLookup[string]()) },
	"bytes": func() *scalarNode {
		n := scalar("bytes", benc.BytesCopy)
		n.keyable = false
		return n
	},
}

type sliceNode struct{ elem Node }

func (n *sliceNode) Unmarshal(r *benc.BytesReader) (any, error) {
	s, err := benc.UnmarshalSlice[any](r, n.elem)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (n *sliceNode) Skip(r *benc.BytesReader) error { return benc.SkipSlice(r, n.elem) }
func (n *sliceNode) String() string { return "[]" + n.elem.String() }
func (n *sliceNode) hashable() bool { return false }

type mapNode struct{ key, value Node }

// Unmarshal decodes into map[any]any; the parser only accepts key layouts whose
// values are hashable.
func (n *mapNode) Unmarshal(r *benc.BytesReader) (any, error) {
	m, err := benc.UnmarshalMap[any, any](r, n.key, n.value)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (n *mapNode) Skip(r *benc.BytesReader) error { return benc.SkipMap(r, n.key, n.value) }
func (n *mapNode) String() string {
	return "map[" + n.key.String() + "]" + n.value.String()
}
func (n *mapNode) hashable() bool { return false }

type optionalNode struct{ elem Node }

// Unmarshal returns nil for an absent value and the element's value otherwise.
func (n *optionalNode) Unmarshal(r *benc.BytesReader) (any, error) {
	v, err := benc.UnmarshalOptional[any](r, n.elem)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

func (n *optionalNode) Skip(r *benc.BytesReader) error { return benc.SkipOptional(r, n.elem) }
func (n *optionalNode) String() string { return "?" + n.elem.String() }
func (n *optionalNode) hashable() bool { return false }

// tupleNode is a fixed sequence of fields written back to back with no framing.
type tupleNode struct{ fields []Node }

func (n *tupleNode) Unmarshal(r *benc.BytesReader) (any, error) {
	out := make([]any, len(n.fields))
	for i, f := range n.fields {
		v, err := f.Unmarshal(r)
		if err != nil {
			return nil, fmt.Errorf("tuple field %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (n *tupleNode) Skip(r *benc.BytesReader) error {
	for i, f := range n.fields {
		if err := f.Skip(r); err != nil {
			return fmt.Errorf("tuple field %d: %w", i, err)
		}
	}
	return nil
}

func (n *tupleNode) String() string {
	parts := make([]string, len(n.fields))
	for i, f := range n.fields {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (n *tupleNode) hashable() bool { return false }

// Fields returns the top-level fields of n: the members of a tuple, or n itself.
func Fields(n Node) []Node {
	if t, ok := n.(*tupleNode); ok {
		return t.fields
	}
	return []Node{n}
}
