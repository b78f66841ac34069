package benc

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    uint32
	Name  string
	Tags  []string
	Score *float64
	At    time.Time
}

var (
	tagsCodec  = SliceOf(String)
	scoreCodec = OptionalOf(Float64)
)

func (r *record) Size() int {
	return Uint32Size + SizeString(r.Name) + tagsCodec.Size(r.Tags) + scoreCodec.Size(r.Score) + TimeSize
}

func (r *record) MarshalBenc(w *BytesWriter) error {
	bw := NewWriter(w)
	bw.WriteUint32(r.ID)
	bw.WriteString(r.Name)
	Write(bw, tagsCodec, r.Tags)
	Write(bw, scoreCodec, r.Score)
	bw.WriteTime(r.At)
	return bw.Err()
}

func (r *record) UnmarshalBenc(br *BytesReader) error {
	rd := NewReader(br)
	rd.ReadUint32(&r.ID)
	rd.ReadString(&r.Name)
	Read(rd, tagsCodec, &r.Tags)
	Read(rd, scoreCodec, &r.Score)
	rd.ReadTime(&r.At)
	return rd.Err()
}

func (r *record) SkipBenc(br *BytesReader) error {
	rd := NewReader(br)
	rd.Skip(Uint32)
	rd.Skip(String)
	rd.Skip(tagsCodec)
	rd.Skip(scoreCodec)
	rd.Skip(Time)
	return rd.Err()
}

func sampleRecord() *record {
	return &record{
		ID:    42,
		Name:  "sensor-7",
		Tags:  []string{"north", "roof"},
		Score: Ptr(0.75),
		At:    time.Unix(1700000000, 500),
	}
}

func assertRecordEqual(t *testing.T, want, got *record) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Tags, got.Tags)
	if want.Score == nil {
		assert.Nil(t, got.Score)
	} else if assert.NotNil(t, got.Score) {
		assert.Equal(t, *want.Score, *got.Score)
	}
	assert.True(t, want.At.Equal(got.At), "want %v, got %v", want.At, got.At)
}

// shortRecord reports one byte more than it writes.
type shortRecord struct{}

func (shortRecord) Size() int { return 5 }
func (shortRecord) MarshalBenc(w *BytesWriter) error { return MarshalUint32(w, 1) }
func (shortRecord) UnmarshalBenc(r *BytesReader) error { return SkipUint32(r) }

func TestMarshalUnmarshal(t *testing.T) {
	in := sampleRecord()
	data, err := Marshal(in)
	require.NoError(t, err)
	assert.Len(t, data, in.Size())

	var out record
	require.NoError(t, Unmarshal(data, &out))
	assertRecordEqual(t, in, &out)
}

func TestMarshalTo(t *testing.T) {
	in := sampleRecord()

	t.Run("LargerBuffer", func(t *testing.T) {
		buf := make([]byte, in.Size()+10)
		n, err := MarshalTo(buf, in)
		require.NoError(t, err)
		assert.Equal(t, in.Size(), n)
		assert.Equal(t, make([]byte, 10), buf[n:])
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		_, err := MarshalTo(make([]byte, in.Size()-1), in)
		assert.ErrorIs(t, err, ErrBufferTooSmall)
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		_, err := MarshalTo(make([]byte, 8), shortRecord{})
		assert.ErrorIs(t, err, ErrSizeMismatch)
	})
}

func TestUnmarshalErrors(t *testing.T) {
	data, err := Marshal(sampleRecord())
	require.NoError(t, err)

	t.Run("TrailingData", func(t *testing.T) {
		var out record
		err := Unmarshal(append(data, 0), &out)
		assert.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("Truncated", func(t *testing.T) {
		for n := 0; n < len(data); n++ {
			var out record
			assert.ErrorIs(t, Unmarshal(data[:n], &out), ErrBufferTooSmall, "prefix of %d bytes", n)
		}
	})
}

func TestMessageOf(t *testing.T) {
	c := SliceOf(MessageOf[record]())
	in := []record{*sampleRecord(), {ID: 1, Tags: []string{}, At: time.Unix(0, 0)}}

	buf := make([]byte, c.Size(in))
	require.NoError(t, c.Marshal(NewBytesWriter(buf), in))

	out, err := c.Unmarshal(NewBytesReader(buf))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assertRecordEqual(t, &in[0], &out[0])
	assertRecordEqual(t, &in[1], &out[1])

	r := NewBytesReader(buf)
	require.NoError(t, c.Skip(r))
	assert.Zero(t, r.Available())
}

func TestBufPool(t *testing.T) {
	in := sampleRecord()
	want, err := Marshal(in)
	require.NoError(t, err)

	t.Run("Default", func(t *testing.T) {
		bp := NewBufPool()
		assert.Equal(t, DefaultBufferSize, bp.BufSize)

		var got []byte
		err := bp.Marshal(in, func(b []byte) error {
			got = bytes.Clone(b)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("MessageTooLarge", func(t *testing.T) {
		bp := NewBufPool(WithBufferSize(8))
		err := bp.Marshal(in, func([]byte) error {
			t.Fatal("consume must not be called")
			return nil
		})
		assert.ErrorIs(t, err, ErrPoolBufferTooSmall)
	})

	t.Run("NonPositiveSize", func(t *testing.T) {
		for _, size := range []int{0, -1} {
			bp := NewBufPool(WithBufferSize(size))
			assert.Equal(t, DefaultBufferSize, bp.BufSize)
			require.NoError(t, bp.Marshal(in, func([]byte) error { return nil }))
		}
	})

	t.Run("ZeroValue", func(t *testing.T) {
		var bp BufPool
		var got []byte
		require.NoError(t, bp.Marshal(in, func(b []byte) error {
			got = bytes.Clone(b)
			return nil
		}))
		assert.Equal(t, want, got)
	})

	t.Run("ConsumeError", func(t *testing.T) {
		bp := NewBufPool()
		err := bp.Marshal(in, func([]byte) error { return ErrTrailingData })
		assert.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("Concurrent", func(t *testing.T) {
		bp := NewBufPool(WithBufferSize(256))
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					err := bp.Marshal(in, func(b []byte) error {
						if !bytes.Equal(want, b) {
							return ErrSizeMismatch
						}
						return nil
					})
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()
	})
}
