package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/benc"
)

// encodeSample writes (u32, string, []?i16, map[string]f64, time, bytes).
func encodeSample(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 256)
	bw := benc.NewBytesWriter(buf)
	w := benc.NewWriter(bw)
	w.WriteUint32(7)
	w.WriteString("hello")
	benc.Write(w, benc.SliceOf(benc.OptionalOf(benc.Int16)), []*int16{benc.Ptr[int16](-1), nil})
	benc.Write(w, benc.SortedMapOf(benc.String, benc.Float64), map[string]float64{"pi": 3.5})
	w.WriteTime(time.Unix(10, 0))
	w.WriteBytes([]byte{0xCA, 0xFE})
	require.NoError(t, w.Err())
	return bw.Bytes()
}

const sampleLayout = "u32, string, []?i16, map[string]f64, time, bytes"

func TestDecode(t *testing.T) {
	n, err := Parse(sampleLayout)
	require.NoError(t, err)

	v, err := Decode(encodeSample(t), n)
	require.NoError(t, err)

	fields, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, fields, 6)
	assert.Equal(t, uint32(7), fields[0])
	assert.Equal(t, "hello", fields[1])
	assert.Equal(t, []any{int16(-1), nil}, fields[2])
	assert.Equal(t, map[any]any{"pi": 3.5}, fields[3])
	assert.True(t, time.Unix(10, 0).Equal(fields[4].(time.Time)))
	assert.Equal(t, []byte{0xCA, 0xFE}, fields[5])
}

func TestDecodeTrailingData(t *testing.T) {
	n, err := Parse("u8")
	require.NoError(t, err)
	_, err = Decode([]byte{1, 2}, n)
	assert.ErrorIs(t, err, benc.ErrTrailingData)
}

func TestDecodeErrors(t *testing.T) {
	n, err := Parse("[]string")
	require.NoError(t, err)

	_, err = Decode([]byte{1, 1, 'a', 1, 1, 1, 0}, n)
	assert.ErrorIs(t, err, benc.ErrMissingTerminator)

	_, err = Decode([]byte{1, 1, 0xFF, 1, 1, 1, 1}, n)
	assert.ErrorIs(t, err, benc.ErrInvalidUTF8)

	tuple, err := Parse("u8, u32")
	require.NoError(t, err)
	_, err = Decode([]byte{1, 2}, tuple)
	assert.ErrorIs(t, err, benc.ErrBufferTooSmall)
	assert.ErrorContains(t, err, "tuple field 1")
}

func TestWalk(t *testing.T) {
	data := encodeSample(t)
	n, err := Parse(sampleLayout)
	require.NoError(t, err)

	var decoded, skipped []Field
	require.NoError(t, Walk(benc.NewBytesReader(data), n, true, func(f Field) error {
		decoded = append(decoded, f)
		return nil
	}))
	require.NoError(t, Walk(benc.NewBytesReader(data), n, false, func(f Field) error {
		skipped = append(skipped, f)
		return nil
	}))

	require.Len(t, decoded, 6)
	require.Len(t, skipped, 6)
	offset := 0
	for i := range decoded {
		assert.Equal(t, i, decoded[i].Index)
		assert.Equal(t, offset, decoded[i].Offset, "field %d", i)
		assert.Equal(t, decoded[i].Offset, skipped[i].Offset)
		assert.Equal(t, decoded[i].Length, skipped[i].Length)
		assert.Equal(t, decoded[i].Layout, skipped[i].Layout)
		assert.Nil(t, skipped[i].Value)
		offset += decoded[i].Length
	}
	assert.Equal(t, len(data), offset)

	assert.Equal(t, 4, decoded[0].Length)
	assert.Equal(t, 6, decoded[1].Length)
	assert.Equal(t, "[]?i16", decoded[2].Layout)
	assert.Equal(t, 1+(1+2)+1+4, decoded[2].Length)
}

func TestWalkSkipDoesNotValidate(t *testing.T) {
	n, err := Parse("string, u8")
	require.NoError(t, err)
	data := []byte{1, 0xFF, 9}

	var last Field
	require.NoError(t, Walk(benc.NewBytesReader(data), n, false, func(f Field) error {
		last = f
		return nil
	}))
	assert.Equal(t, 2, last.Offset)

	err = Walk(benc.NewBytesReader(data), n, true, func(Field) error { return nil })
	assert.ErrorIs(t, err, benc.ErrInvalidUTF8)
	assert.ErrorContains(t, err, "field 0 (string) at offset 0")
}

func TestWalkStopsOnVisitError(t *testing.T) {
	n, err := Parse("u8, u8, u8")
	require.NoError(t, err)
	calls := 0
	err = Walk(benc.NewBytesReader([]byte{1, 2, 3}), n, true, func(Field) error {
		calls++
		return benc.ErrOutOfRange
	})
	assert.ErrorIs(t, err, benc.ErrOutOfRange)
	assert.Equal(t, 1, calls)
}
