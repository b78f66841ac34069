package benc

import (
	"unicode/utf8"
	"unsafe"
)

// readPrefixed reads a varint length prefix followed by that many raw bytes.
// The returned slice borrows from the reader's buffer.
func readPrefixed(r *BytesReader) ([]byte, error) {
	n, err := UnmarshalUvarint(r)
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Available()) {
		return nil, ErrBufferTooSmall
	}
	return r.Advance(int(n))
}

// skipPrefixed moves past a length-prefixed payload without looking at its content.
func skipPrefixed(r *BytesReader) error {
	_, err := readPrefixed(r)
	return err
}

// SizeString returns the number of bytes MarshalString writes for s.
func SizeString(s string) int { return SizeUvarint(uint64(len(s))) + len(s) }

// MarshalString writes the byte length of s as a varint followed by its bytes.
func MarshalString(w *BytesWriter, s string) error {
	if SizeString(s) > w.Available() {
		return ErrBufferTooSmall
	}
	if err := MarshalUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

// UnmarshalString reads a length-prefixed string into newly allocated memory.
// A truncated payload fails with ErrBufferTooSmall; a complete payload that is
// not valid UTF-8 fails with ErrInvalidUTF8.
func UnmarshalString(r *BytesReader) (string, error) {
	b, err := readPrefixed(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// UnmarshalUnsafeString is UnmarshalString without the copy: the returned
// string shares memory with the reader's buffer. It is only valid while that
// buffer is neither mutated nor reused; writing to the buffer afterwards
// silently changes an immutable Go string.
func UnmarshalUnsafeString(r *BytesReader) (string, error) {
	b, err := readPrefixed(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(&b[0], len(b)), nil
}

// SkipString moves past a string without validating its content.
func SkipString(r *BytesReader) error { return skipPrefixed(r) }

// SizeBytes returns the number of bytes MarshalBytes writes for b.
func SizeBytes(b []byte) int { return SizeUvarint(uint64(len(b))) + len(b) }

// MarshalBytes writes the length of b as a varint followed by its content.
func MarshalBytes(w *BytesWriter, b []byte) error {
	if SizeBytes(b) > w.Available() {
		return ErrBufferTooSmall
	}
	if err := MarshalUvarint(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// UnmarshalBytes reads a length-prefixed byte slice without copying.
// The result borrows from the reader's buffer and stays valid only as long as
// that buffer is not mutated or reused. Use UnmarshalBytesCopy to keep the
// value beyond the buffer's lifetime.
func UnmarshalBytes(r *BytesReader) ([]byte, error) {
	return readPrefixed(r)
}

// UnmarshalBytesCopy reads a length-prefixed byte slice into newly allocated memory.
func UnmarshalBytesCopy(r *BytesReader) ([]byte, error) {
	b, err := readPrefixed(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// SkipBytes moves past a byte slice.
func SkipBytes(r *BytesReader) error { return skipPrefixed(r) }
