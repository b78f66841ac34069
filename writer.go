package benc

import "time"

// Writer simplifies marshalling a sequence of fields onto a BytesWriter.
// It tracks the first error; after an error, all subsequent writes become no-ops,
// so a message can write every field and check Err once at the end.
type Writer struct {
	w   *BytesWriter
	err error // first error encountered. Subsequent writes become no-ops.
}

// NewWriter creates a Writer over an existing write cursor.
func NewWriter(w *BytesWriter) *Writer {
	return &Writer{w: w}
}

// Count returns the total number of bytes written to the underlying cursor.
func (w *Writer) Count() int { return w.w.Len() }
func (w *Writer) Err() error { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Result returns the final count and error state.
func (w *Writer) Result() (int, error) {
	return w.w.Len(), w.err
}

// Write marshals v with m.
func Write[T any](w *Writer, m Marshaler[T], v T) {
	if w.err != nil {
		return
	}
	w.setError(m.Marshal(w.w, v))
}

func write[T any](w *Writer, marshal func(*BytesWriter, T) error, v T) {
	if w.err != nil {
		return
	}
	w.setError(marshal(w.w, v))
}

// WriteRaw writes b verbatim, without a length prefix.
func (w *Writer) WriteRaw(b []byte) {
	if w.err != nil {
		return
	}
	_, err := w.w.Write(b)
	w.setError(err)
}

// --- Primitive Write Operations ---

func (w *Writer) WriteBool(v bool) { write(w, MarshalBool, v) }
func (w *Writer) WriteUint8(v uint8) { write(w, MarshalUint8, v) }
func (w *Writer) WriteInt8(v int8) { write(w, MarshalInt8, v) }
func (w *Writer) WriteUint16(v uint16) { write(w, MarshalUint16, v) }
func (w *Writer) WriteInt16(v int16) { write(w, MarshalInt16, v) }
func (w *Writer) WriteUint32(v uint32) { write(w, MarshalUint32, v) }
func (w *Writer) WriteInt32(v int32) { write(w, MarshalInt32, v) }
func (w *Writer) WriteUint64(v uint64) { write(w, MarshalUint64, v) }
func (w *Writer) WriteInt64(v int64) { write(w, MarshalInt64, v) }
func (w *Writer) WriteFloat32(v float32) { write(w, MarshalFloat32, v) }
func (w *Writer) WriteFloat64(v float64) { write(w, MarshalFloat64, v) }
func (w *Writer) WriteComplex64(v complex64) { write(w, MarshalComplex64, v) }
func (w *Writer) WriteComplex128(v complex128) { write(w, MarshalComplex128, v) }
func (w *Writer) WriteTime(v time.Time) { write(w, MarshalTime, v) }

// --- Variable-length Write Operations ---

func (w *Writer) WriteUvarint(v uint64) { write(w, MarshalUvarint, v) }
func (w *Writer) WriteVarint(v int64) { write(w, MarshalVarint, v) }
func (w *Writer) WriteUint(v uint) { write(w, MarshalUint, v) }
func (w *Writer) WriteInt(v int) { write(w, MarshalInt, v) }
func (w *Writer) WriteUintptr(v uintptr) { write(w, MarshalUintptr, v) }
func (w *Writer) WriteString(v string) { write(w, MarshalString, v) }
func (w *Writer) WriteBytes(v []byte) { write(w, MarshalBytes, v) }
