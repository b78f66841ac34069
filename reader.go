package benc

import "time"

// Reader simplifies unmarshalling a sequence of fields from a BytesReader.
// It tracks the first error; subsequent reads become no-ops and leave their
// destinations untouched.
type Reader struct {
	r   *BytesReader
	err error // first error encountered.
}

// NewReader creates a Reader over an existing read cursor.
func NewReader(r *BytesReader) *Reader {
	return &Reader{r: r}
}

// Count returns the total number of bytes consumed from the underlying cursor.
func (r *Reader) Count() int { return r.r.Len() }
func (r *Reader) Err() error { return r.err }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int, error) {
	return r.r.Len(), r.err
}

// Read unmarshals a value with u into dest.
func Read[T any](r *Reader, u Unmarshaler[T], dest *T) {
	if r.err != nil {
		return
	}
	v, err := u.Unmarshal(r.r)
	if err != nil {
		r.setError(err)
		return
	}
	*dest = v
}

func read[T any](r *Reader, unmarshal func(*BytesReader) (T, error), dest *T) {
	if r.err != nil {
		return
	}
	v, err := unmarshal(r.r)
	if err != nil {
		r.setError(err)
		return
	}
	*dest = v
}

// Skip moves past one value using s.
func (r *Reader) Skip(s Skipper) {
	if r.err != nil {
		return
	}
	r.setError(s.Skip(r.r))
}

// ReadRaw returns the next n bytes verbatim. The result borrows from the source buffer.
func (r *Reader) ReadRaw(n int) []byte {
	if r.err != nil {
		return nil
	}
	b, err := r.r.Advance(n)
	r.setError(err)
	return b
}

// --- Primitive Read Operations ---

func (r *Reader) ReadBool(dest *bool) { read(r, UnmarshalBool, dest) }
func (r *Reader) ReadUint8(dest *uint8) { read(r, UnmarshalUint8, dest) }
func (r *Reader) ReadInt8(dest *int8) { read(r, UnmarshalInt8, dest) }
func (r *Reader) ReadUint16(dest *uint16) { read(r, UnmarshalUint16, dest) }
func (r *Reader) ReadInt16(dest *int16) { read(r, UnmarshalInt16, dest) }
func (r *Reader) ReadUint32(dest *uint32) { read(r, UnmarshalUint32, dest) }
func (r *Reader) ReadInt32(dest *int32) { read(r, UnmarshalInt32, dest) }
func (r *Reader) ReadUint64(dest *uint64) { read(r, UnmarshalUint64, dest) }
func (r *Reader) ReadInt64(dest *int64) { read(r, UnmarshalInt64, dest) }
func (r *Reader) ReadFloat32(dest *float32) { read(r, UnmarshalFloat32, dest) }
func (r *Reader) ReadFloat64(dest *float64) { read(r, UnmarshalFloat64, dest) }
func (r *Reader) ReadComplex64(dest *complex64) { read(r, UnmarshalComplex64, dest) }
func (r *Reader) ReadComplex128(dest *complex128) { read(r, UnmarshalComplex128, dest) }
func (r *Reader) ReadTime(dest *time.Time) { read(r, UnmarshalTime, dest) }

// --- Variable-length Read Operations ---

func (r *Reader) ReadUvarint(dest *uint64) { read(r, UnmarshalUvarint, dest) }
func (r *Reader) ReadVarint(dest *int64) { read(r, UnmarshalVarint, dest) }
func (r *Reader) ReadUint(dest *uint) { read(r, UnmarshalUint, dest) }
func (r *Reader) ReadInt(dest *int) { read(r, UnmarshalInt, dest) }
func (r *Reader) ReadUintptr(dest *uintptr) { read(r, UnmarshalUintptr, dest) }

// ReadString copies the string out of the source buffer.
func (r *Reader) ReadString(dest *string) { read(r, UnmarshalString, dest) }

// ReadBytes borrows from the source buffer; see UnmarshalBytes.
func (r *Reader) ReadBytes(dest *[]byte) { read(r, UnmarshalBytes, dest) }
