package layout

import (
	"fmt"

	"github.com/oy3o/benc"
)

// Field describes one top-level field of a walked buffer.
type Field struct {
	Index  int
	Layout string
	Offset int // offset of the first byte of the field in the buffer
	Length int // encoded length in bytes
	Value  any // nil when walking without decoding
}

// Walk visits the top-level fields of n in order, starting at the cursor.
// With decode false each field is skipped rather than built, which never
// validates string content and allocates nothing.
func Walk(r *benc.BytesReader, n Node, decode bool, visit func(Field) error) error {
	for i, f := range Fields(n) {
		start := r.Len()
		var v any
		var err error
		if decode {
			v, err = f.Unmarshal(r)
		} else {
			err = f.Skip(r)
		}
		if err != nil {
			return fmt.Errorf("field %d (%s) at offset %d: %w", i, f, start, err)
		}
		field := Field{Index: i, Layout: f.String(), Offset: start, Length: r.Len() - start, Value: v}
		if err := visit(field); err != nil {
			return err
		}
	}
	return nil
}

// Decode decodes data with n and requires every byte to be consumed.
func Decode(data []byte, n Node) (any, error) {
	r := benc.NewBytesReader(data)
	v, err := n.Unmarshal(r)
	if err != nil {
		return nil, err
	}
	if r.Available() != 0 {
		return nil, fmt.Errorf("%w: %d of %d bytes unread", benc.ErrTrailingData, r.Available(), len(data))
	}
	return v, nil
}
