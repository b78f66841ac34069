package benc

// BytesWriter is a write cursor over a caller-owned byte slice.
// It never grows the slice: a write that does not fit entirely fails with
// ErrBufferTooSmall and leaves the cursor untouched.
// A BytesWriter is not safe for concurrent use.
type BytesWriter struct {
	B []byte // destination slice
	N int    // current write position
}

// NewBytesWriter creates a new BytesWriter covering len(p) bytes of p.
func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p}
}

// Write copies p to the front of the unwritten remainder.
// It implements io.Writer, but unlike most writers it is all-or-nothing.
func (w *BytesWriter) Write(p []byte) (int, error) {
	if len(p) > w.Available() {
		return 0, ErrBufferTooSmall
	}
	n := copy(w.B[w.N:], p)
	w.N += n
	return n, nil
}

// WriteString implements the io.StringWriter interface with the same all-or-nothing rule.
func (w *BytesWriter) WriteString(s string) (int, error) {
	if len(s) > w.Available() {
		return 0, ErrBufferTooSmall
	}
	n := copy(w.B[w.N:], s)
	w.N += n
	return n, nil
}

// WriteByte implements the io.ByteWriter interface.
func (w *BytesWriter) WriteByte(c byte) error {
	if w.N >= len(w.B) {
		return ErrBufferTooSmall
	}
	w.B[w.N] = c
	w.N++
	return nil
}

// next reserves n bytes and returns them for the caller to fill.
func (w *BytesWriter) next(n int) ([]byte, error) {
	if n > w.Available() {
		return nil, ErrBufferTooSmall
	}
	b := w.B[w.N : w.N+n]
	w.N += n
	return b, nil
}

// Reset allows the underlying byte slice to be reused.
func (w *BytesWriter) Reset() { w.N = 0 }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.N }

// Size returns the length of the underlying byte slice.
func (w *BytesWriter) Size() int { return len(w.B) }

// Available returns the number of bytes available for writing.
func (w *BytesWriter) Available() int { return len(w.B) - w.N }

// Bytes returns a slice view of the written data.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }
