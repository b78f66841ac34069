package benc

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// MaxVarintLen64 is the maximum number of groups a 64-bit varint occupies.
// The 10th group may only carry a single payload bit.
const MaxVarintLen64 = 10

// SizeUvarint returns the number of bytes MarshalUvarint writes for v.
func SizeUvarint(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}

// MarshalUvarint writes v as base-128 groups, least significant group first,
// with the continuation bit (0x80) set on every group but the last.
func MarshalUvarint(w *BytesWriter, v uint64) error {
	var buf [MaxVarintLen64]byte
	i := 0
	for v >= 0x80 {
		buf[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	buf[i] = byte(v)
	_, err := w.Write(buf[:i+1])
	return err
}

// scanUvarint decodes the varint at the cursor without consuming it and
// returns its value and encoded length. The scan is bounded to MaxVarintLen64 bytes.
func scanUvarint(r *BytesReader) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < MaxVarintLen64; i++ {
		b, ok := r.peek(i)
		if !ok {
			return 0, 0, ErrBufferTooSmall
		}
		if b < 0x80 {
			if i == MaxVarintLen64-1 && b > 1 {
				return 0, 0, ErrVarintOverflow
			}
			return v | uint64(b)<<shift, i + 1, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
	return 0, 0, ErrVarintOverflow
}

// UnmarshalUvarint reads a varint-encoded uint64.
// The cursor only moves when the varint decodes successfully.
func UnmarshalUvarint(r *BytesReader) (uint64, error) {
	v, n, err := scanUvarint(r)
	if err != nil {
		return 0, err
	}
	r.N += n
	return v, nil
}

// SkipUvarint moves past a varint, applying the same checks as UnmarshalUvarint.
func SkipUvarint(r *BytesReader) error {
	_, n, err := scanUvarint(r)
	if err != nil {
		return err
	}
	r.N += n
	return nil
}

// UnmarshalUvarintAs reads a varint and narrows it to T.
// A value that does not fit T fails with ErrOutOfRange after the varint has been consumed.
func UnmarshalUvarintAs[T constraints.Unsigned](r *BytesReader) (T, error) {
	v, err := UnmarshalUvarint(r)
	if err != nil {
		return 0, err
	}
	t := T(v)
	if uint64(t) != v {
		return 0, ErrOutOfRange
	}
	return t, nil
}

// EncodeZigZag maps a signed integer onto an unsigned one so that values of
// small magnitude stay small: 0→0, -1→1, 1→2, -2→3, ...
func EncodeZigZag[T constraints.Signed](v T) uint64 {
	x := int64(v)
	return uint64(x<<1) ^ uint64(x>>63)
}

// DecodeZigZag is the inverse of EncodeZigZag.
func DecodeZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// SizeVarint returns the number of bytes MarshalVarint writes for v.
func SizeVarint(v int64) int { return SizeUvarint(EncodeZigZag(v)) }

// MarshalVarint writes v as a zigzag-mapped varint.
func MarshalVarint(w *BytesWriter, v int64) error { return MarshalUvarint(w, EncodeZigZag(v)) }

// UnmarshalVarint reads a zigzag-mapped varint.
func UnmarshalVarint(r *BytesReader) (int64, error) {
	u, err := UnmarshalUvarint(r)
	if err != nil {
		return 0, err
	}
	return DecodeZigZag(u), nil
}

// SkipVarint moves past a zigzag-mapped varint.
func SkipVarint(r *BytesReader) error { return SkipUvarint(r) }

// UnmarshalVarintAs reads a zigzag-mapped varint and narrows it to T.
// A value that does not fit T fails with ErrOutOfRange after the varint has been consumed.
func UnmarshalVarintAs[T constraints.Signed](r *BytesReader) (T, error) {
	v, err := UnmarshalVarint(r)
	if err != nil {
		return 0, err
	}
	t := T(v)
	if int64(t) != v {
		return 0, ErrOutOfRange
	}
	return t, nil
}

// Platform-width integers always travel in their 64-bit varint form,
// whatever the width of the host that wrote them. Decoding a value the host
// type cannot hold fails with ErrOutOfRange.

// SizeUint returns the number of bytes MarshalUint writes for v.
func SizeUint(v uint) int { return SizeUvarint(uint64(v)) }

// MarshalUint writes v as an unsigned varint.
func MarshalUint(w *BytesWriter, v uint) error { return MarshalUvarint(w, uint64(v)) }

// UnmarshalUint reads an unsigned varint into a uint.
func UnmarshalUint(r *BytesReader) (uint, error) { return UnmarshalUvarintAs[uint](r) }

func SkipUint(r *BytesReader) error { return SkipUvarint(r) }

// SizeInt returns the number of bytes MarshalInt writes for v.
func SizeInt(v int) int { return SizeVarint(int64(v)) }

// MarshalInt writes v as a zigzag-mapped varint.
func MarshalInt(w *BytesWriter, v int) error { return MarshalVarint(w, int64(v)) }

// UnmarshalInt reads a zigzag-mapped varint into an int.
func UnmarshalInt(r *BytesReader) (int, error) { return UnmarshalVarintAs[int](r) }

func SkipInt(r *BytesReader) error { return SkipVarint(r) }

// SizeUintptr returns the number of bytes MarshalUintptr writes for v.
func SizeUintptr(v uintptr) int { return SizeUvarint(uint64(v)) }

// MarshalUintptr writes v as an unsigned varint.
func MarshalUintptr(w *BytesWriter, v uintptr) error { return MarshalUvarint(w, uint64(v)) }

// UnmarshalUintptr reads an unsigned varint into a uintptr.
func UnmarshalUintptr(r *BytesReader) (uintptr, error) { return UnmarshalUvarintAs[uintptr](r) }

func SkipUintptr(r *BytesReader) error { return SkipUvarint(r) }
