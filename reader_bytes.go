package benc

// BytesReader is a read cursor over a caller-owned byte slice.
// Every decode consumes bytes from the front of the unread remainder B[N:].
// A BytesReader is not safe for concurrent use.
type BytesReader struct {
	B []byte // source slice, never modified
	N int    // current read position
}

// NewBytesReader creates a new BytesReader positioned at the start of b.
func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{B: b}
}

// Advance returns the next n bytes and moves the cursor past them.
// The returned slice borrows from B (no copy) and its capacity is clipped,
// so appending to it never overwrites the source. It stays valid until B is
// mutated or released by its owner.
func (r *BytesReader) Advance(n int) ([]byte, error) {
	if n < 0 || r.Available() < n {
		return nil, ErrBufferTooSmall
	}
	end := r.N + n
	b := r.B[r.N:end:end]
	r.N = end
	return b, nil
}

// peek returns the byte i positions past the cursor without consuming it.
func (r *BytesReader) peek(i int) (byte, bool) {
	if i >= r.Available() {
		return 0, false
	}
	return r.B[r.N+i], true
}

// Reset rewinds the cursor to the start of the slice.
func (r *BytesReader) Reset() { r.N = 0 }

// Len returns the number of bytes consumed.
func (r *BytesReader) Len() int { return r.N }

// Size returns the size of the underlying byte slice.
func (r *BytesReader) Size() int { return len(r.B) }

// Available returns the number of unread bytes.
func (r *BytesReader) Available() int {
	length := len(r.B) - r.N
	if length <= 0 {
		return 0
	}
	return length
}

// Remaining returns the unread bytes without consuming them.
func (r *BytesReader) Remaining() []byte {
	if r.N >= len(r.B) {
		return nil
	}
	return r.B[r.N:]
}
