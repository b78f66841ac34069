package benc

import (
	"math"
	"time"
)

// Wire widths of the fixed-size scalars.
const (
	BoolSize       = 1
	Uint8Size      = 1
	Int8Size       = 1
	Uint16Size     = 2
	Int16Size      = 2
	Uint32Size     = 4
	Int32Size      = 4
	Uint64Size     = 8
	Int64Size      = 8
	Float32Size    = 4
	Float64Size    = 8
	Complex64Size  = 2 * Float32Size
	Complex128Size = 2 * Float64Size
	TimeSize       = Int64Size
)

// skipFixed moves the cursor past n bytes without interpreting them.
func skipFixed(r *BytesReader, n int) error {
	_, err := r.Advance(n)
	return err
}

// MarshalBool writes 1 for true and 0 for false.
func MarshalBool(w *BytesWriter, v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// UnmarshalBool reads a single byte. Only the value 1 decodes as true; every
// other byte, including values other than 0, decodes as false.
func UnmarshalBool(r *BytesReader) (bool, error) {
	b, err := UnmarshalUint8(r)
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// SkipBool moves past a bool without decoding it.
func SkipBool(r *BytesReader) error { return skipFixed(r, BoolSize) }

// MarshalUint8 writes v as a single byte.
func MarshalUint8(w *BytesWriter, v uint8) error { return w.WriteByte(v) }

// UnmarshalUint8 reads a uint8 written by MarshalUint8.
func UnmarshalUint8(r *BytesReader) (uint8, error) {
	b, err := r.Advance(Uint8Size)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// SkipUint8 moves past a uint8 without decoding it.
func SkipUint8(r *BytesReader) error { return skipFixed(r, Uint8Size) }

// MarshalInt8 writes v as a single byte, two's complement.
func MarshalInt8(w *BytesWriter, v int8) error { return w.WriteByte(uint8(v)) }

// UnmarshalInt8 reads an int8 written by MarshalInt8.
func UnmarshalInt8(r *BytesReader) (int8, error) {
	v, err := UnmarshalUint8(r)
	return int8(v), err
}

func SkipInt8(r *BytesReader) error { return skipFixed(r, Int8Size) }

// MarshalUint16 writes v as 2 little-endian bytes.
func MarshalUint16(w *BytesWriter, v uint16) error {
	b, err := w.next(Uint16Size)
	if err != nil {
		return err
	}
	Order.PutUint16(b, v)
	return nil
}

// UnmarshalUint16 reads a uint16 written by MarshalUint16.
func UnmarshalUint16(r *BytesReader) (uint16, error) {
	b, err := r.Advance(Uint16Size)
	if err != nil {
		return 0, err
	}
	return Order.Uint16(b), nil
}

// SkipUint16 moves past a uint16 without decoding it.
func SkipUint16(r *BytesReader) error { return skipFixed(r, Uint16Size) }

// MarshalInt16 writes v as 2 little-endian bytes, two's complement.
func MarshalInt16(w *BytesWriter, v int16) error { return MarshalUint16(w, uint16(v)) }

// UnmarshalInt16 reads an int16 written by MarshalInt16.
func UnmarshalInt16(r *BytesReader) (int16, error) {
	v, err := UnmarshalUint16(r)
	return int16(v), err
}

func SkipInt16(r *BytesReader) error { return skipFixed(r, Int16Size) }

// MarshalUint32 writes v as 4 little-endian bytes.
func MarshalUint32(w *BytesWriter, v uint32) error {
	b, err := w.next(Uint32Size)
	if err != nil {
		return err
	}
	Order.PutUint32(b, v)
	return nil
}

// UnmarshalUint32 reads a uint32 written by MarshalUint32.
func UnmarshalUint32(r *BytesReader) (uint32, error) {
	b, err := r.Advance(Uint32Size)
	if err != nil {
		return 0, err
	}
	return Order.Uint32(b), nil
}

// SkipUint32 moves past a uint32 without decoding it.
func SkipUint32(r *BytesReader) error { return skipFixed(r, Uint32Size) }

// MarshalInt32 writes v as 4 little-endian bytes, two's complement.
func MarshalInt32(w *BytesWriter, v int32) error { return MarshalUint32(w, uint32(v)) }

// UnmarshalInt32 reads an int32 written by MarshalInt32.
func UnmarshalInt32(r *BytesReader) (int32, error) {
	v, err := UnmarshalUint32(r)
	return int32(v), err
}

func SkipInt32(r *BytesReader) error { return skipFixed(r, Int32Size) }

// MarshalUint64 writes v as 8 little-endian bytes.
func MarshalUint64(w *BytesWriter, v uint64) error {
	b, err := w.next(Uint64Size)
	if err != nil {
		return err
	}
	Order.PutUint64(b, v)
	return nil
}

// UnmarshalUint64 reads a uint64 written by MarshalUint64.
func UnmarshalUint64(r *BytesReader) (uint64, error) {
	b, err := r.Advance(Uint64Size)
	if err != nil {
		return 0, err
	}
	return Order.Uint64(b), nil
}

// SkipUint64 moves past a uint64 without decoding it.
func SkipUint64(r *BytesReader) error { return skipFixed(r, Uint64Size) }

// MarshalInt64 writes v as 8 little-endian bytes, two's complement.
func MarshalInt64(w *BytesWriter, v int64) error { return MarshalUint64(w, uint64(v)) }

// UnmarshalInt64 reads an int64 written by MarshalInt64.
func UnmarshalInt64(r *BytesReader) (int64, error) {
	v, err := UnmarshalUint64(r)
	return int64(v), err
}

func SkipInt64(r *BytesReader) error { return skipFixed(r, Int64Size) }

// Floats travel as their IEEE-754 bit patterns.

// MarshalFloat32 writes v as the 4-byte IEEE-754 bit pattern.
func MarshalFloat32(w *BytesWriter, v float32) error { return MarshalUint32(w, math.Float32bits(v)) }

// UnmarshalFloat32 reads a float32 written by MarshalFloat32.
func UnmarshalFloat32(r *BytesReader) (float32, error) {
	v, err := UnmarshalUint32(r)
	return math.Float32frombits(v), err
}

// SkipFloat32 moves past a float32 without decoding it.
func SkipFloat32(r *BytesReader) error { return skipFixed(r, Float32Size) }

// MarshalFloat64 writes v as the 8-byte IEEE-754 bit pattern.
func MarshalFloat64(w *BytesWriter, v float64) error { return MarshalUint64(w, math.Float64bits(v)) }

// UnmarshalFloat64 reads a float64 written by MarshalFloat64.
func UnmarshalFloat64(r *BytesReader) (float64, error) {
	v, err := UnmarshalUint64(r)
	return math.Float64frombits(v), err
}

// SkipFloat64 moves past a float64 without decoding it.
func SkipFloat64(r *BytesReader) error { return skipFixed(r, Float64Size) }

// Complex numbers are their real part followed by their imaginary part.

// MarshalComplex64 writes v as two float32 values.
func MarshalComplex64(w *BytesWriter, v complex64) error {
	if err := MarshalFloat32(w, real(v)); err != nil {
		return err
	}
	return MarshalFloat32(w, imag(v))
}

// UnmarshalComplex64 reads a complex64 written by MarshalComplex64.
func UnmarshalComplex64(r *BytesReader) (complex64, error) {
	re, err := UnmarshalFloat32(r)
	if err != nil {
		return 0, err
	}
	im, err := UnmarshalFloat32(r)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

// SkipComplex64 moves past a complex64 without decoding it.
func SkipComplex64(r *BytesReader) error { return skipFixed(r, Complex64Size) }

// MarshalComplex128 writes v as two float64 values.
func MarshalComplex128(w *BytesWriter, v complex128) error {
	if err := MarshalFloat64(w, real(v)); err != nil {
		return err
	}
	return MarshalFloat64(w, imag(v))
}

// UnmarshalComplex128 reads a complex128 written by MarshalComplex128.
func UnmarshalComplex128(r *BytesReader) (complex128, error) {
	re, err := UnmarshalFloat64(r)
	if err != nil {
		return 0, err
	}
	im, err := UnmarshalFloat64(r)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

// SkipComplex128 moves past a complex128 without decoding it.
func SkipComplex128(r *BytesReader) error { return skipFixed(r, Complex128Size) }

// The instants representable as int64 nanoseconds since the Unix epoch.
var (
	minTime = time.Unix(0, math.MinInt64)
	maxTime = time.Unix(0, math.MaxInt64)
)

// MarshalTime writes t as a signed 64-bit nanosecond offset from the Unix epoch.
// Instants outside the representable range, including the zero time.Time,
// are written as the epoch itself rather than failing.
func MarshalTime(w *BytesWriter, t time.Time) error {
	var nanos int64
	if !t.Before(minTime) && !t.After(maxTime) {
		nanos = t.UnixNano()
	}
	return MarshalInt64(w, nanos)
}

// UnmarshalTime reads a nanosecond offset and returns it as a UTC instant.
// Every 64-bit value is a valid timestamp.
func UnmarshalTime(r *BytesReader) (time.Time, error) {
	nanos, err := UnmarshalInt64(r)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, nanos).UTC(), nil
}

// SkipTime moves past a timestamp without decoding it.
func SkipTime(r *BytesReader) error { return skipFixed(r, TimeSize) }

