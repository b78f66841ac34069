package benc

import "time"

// Sizer reports how many bytes a value of type T occupies on the wire.
// Callers use it to pre-allocate the destination buffer before marshalling.
type Sizer[T any] interface {
	// Size returns exactly the number of bytes Marshal writes for v.
	Size(v T) int
}

// Marshaler writes a value of type T at the front of a write cursor.
type Marshaler[T any] interface {
	Marshal(w *BytesWriter, v T) error
}

// Unmarshaler reads a value of type T from the front of a read cursor.
type Unmarshaler[T any] interface {
	Unmarshal(r *BytesReader) (T, error)
}

// Skipper moves a read cursor past one encoded value without building it.
// Skip consumes exactly as many bytes as the matching Unmarshal would.
type Skipper interface {
	Skip(r *BytesReader) error
}

// Codec aggregates the four operations of a single wire type.
// Codecs are first-class values: the container constructors (SliceOf, MapOf,
// OptionalOf) take element codecs and return codecs, so nested layouts compose.
type Codec[T any] interface {
	Sizer[T]
	Marshaler[T]
	Unmarshaler[T]
	Skipper
}

// FixedSizer is implemented by codecs whose values all have the same width.
// SizeSlice uses it to multiply instead of summing per element.
type FixedSizer interface {
	FixedSize() int
}

// SkipFunc adapts a plain function to the Skipper interface.
type SkipFunc func(r *BytesReader) error

func (f SkipFunc) Skip(r *BytesReader) error { return f(r) }

// Funcs builds a Codec from four plain functions.
type Funcs[T any] struct {
	SizeFn      func(v T) int
	MarshalFn   func(w *BytesWriter, v T) error
	UnmarshalFn func(r *BytesReader) (T, error)
	SkipFn      func(r *BytesReader) error
}

// Statically assert that Funcs implements Codec.
var _ Codec[int] = Funcs[int]{}

func (f Funcs[T]) Size(v T) int { return f.SizeFn(v) }
func (f Funcs[T]) Marshal(w *BytesWriter, v T) error { return f.MarshalFn(w, v) }
func (f Funcs[T]) Unmarshal(r *BytesReader) (T, error) { return f.UnmarshalFn(r) }
func (f Funcs[T]) Skip(r *BytesReader) error { return f.SkipFn(r) }

// fixedCodec is a Codec for a scalar with a constant wire width.
type fixedCodec[T any] struct {
	width     int
	marshal   func(*BytesWriter, T) error
	unmarshal func(*BytesReader) (T, error)
}

var _ FixedSizer = fixedCodec[bool]{}

func (c fixedCodec[T]) Size(T) int { return c.width }
func (c fixedCodec[T]) FixedSize() int { return c.width }
func (c fixedCodec[T]) Marshal(w *BytesWriter, v T) error { return c.marshal(w, v) }
func (c fixedCodec[T]) Unmarshal(r *BytesReader) (T, error) { return c.unmarshal(r) }
func (c fixedCodec[T]) Skip(r *BytesReader) error { return skipFixed(r, c.width) }

// Built-in codecs.
var (
	Bool       Codec[bool]       = fixedCodec[bool]{BoolSize, MarshalBool, UnmarshalBool}
	Uint8      Codec[uint8]      = fixedCodec[uint8]{Uint8Size, MarshalUint8, UnmarshalUint8}
	Int8       Codec[int8]       = fixedCodec[int8]{Int8Size, MarshalInt8, UnmarshalInt8}
	Uint16     Codec[uint16]     = fixedCodec[uint16]{Uint16Size, MarshalUint16, UnmarshalUint16}
	Int16      Codec[int16]      = fixedCodec[int16]{Int16Size, MarshalInt16, UnmarshalInt16}
	Uint32     Codec[uint32]     = fixedCodec[uint32]{Uint32Size, MarshalUint32, UnmarshalUint32}
	Int32      Codec[int32]      = fixedCodec[int32]{Int32Size, MarshalInt32, UnmarshalInt32}
	Uint64     Codec[uint64]     = fixedCodec[uint64]{Uint64Size, MarshalUint64, UnmarshalUint64}
	Int64      Codec[int64]      = fixedCodec[int64]{Int64Size, MarshalInt64, UnmarshalInt64}
	Float32    Codec[float32]    = fixedCodec[float32]{Float32Size, MarshalFloat32, UnmarshalFloat32}
	Float64    Codec[float64]    = fixedCodec[float64]{Float64Size, MarshalFloat64, UnmarshalFloat64}
	Complex64  Codec[complex64]  = fixedCodec[complex64]{Complex64Size, MarshalComplex64, UnmarshalComplex64}
	Complex128 Codec[complex128] = fixedCodec[complex128]{Complex128Size, MarshalComplex128, UnmarshalComplex128}
	Time       Codec[time.Time]  = fixedCodec[time.Time]{TimeSize, MarshalTime, UnmarshalTime}

	Uvarint Codec[uint64]  = Funcs[uint64]{SizeUvarint, MarshalUvarint, UnmarshalUvarint, SkipUvarint}
	Varint  Codec[int64]   = Funcs[int64]{SizeVarint, MarshalVarint, UnmarshalVarint, SkipVarint}
	Uint    Codec[uint]    = Funcs[uint]{SizeUint, MarshalUint, UnmarshalUint, SkipUint}
	Int     Codec[int]     = Funcs[int]{SizeInt, MarshalInt, UnmarshalInt, SkipInt}
	Uintptr Codec[uintptr] = Funcs[uintptr]{SizeUintptr, MarshalUintptr, UnmarshalUintptr, SkipUintptr}

	String       Codec[string] = Funcs[string]{SizeString, MarshalString, UnmarshalString, SkipString}
	UnsafeString Codec[string] = Funcs[string]{SizeString, MarshalString, UnmarshalUnsafeString, SkipString}
	Bytes        Codec[[]byte] = Funcs[[]byte]{SizeBytes, MarshalBytes, UnmarshalBytes, SkipBytes}
	BytesCopy    Codec[[]byte] = Funcs[[]byte]{SizeBytes, MarshalBytes, UnmarshalBytesCopy, SkipBytes}
)
