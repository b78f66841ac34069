package benc

import "fmt"

// Message is implemented by application types that encode themselves,
// typically by composing the codecs of their fields in a fixed order.
type Message interface {
	// Size returns exactly the number of bytes MarshalBenc writes.
	Size() int
	MarshalBenc(w *BytesWriter) error
	UnmarshalBenc(r *BytesReader) error
}

// MessageSkipper is an optional extension of Message for types that can move
// past their encoding without decoding it.
type MessageSkipper interface {
	SkipBenc(r *BytesReader) error
}

// Marshal allocates a buffer of exactly m.Size() bytes and marshals m into it.
func Marshal(m Message) ([]byte, error) {
	buf := make([]byte, m.Size())
	if _, err := MarshalTo(buf, m); err != nil {
		return nil, err
	}
	return buf, nil
}

// MarshalTo marshals m into the front of p and returns the number of bytes written.
// It fails with ErrSizeMismatch if MarshalBenc wrote fewer bytes than Size reported,
// which always indicates a bug in the message's Size method.
func MarshalTo(p []byte, m Message) (int, error) {
	size := m.Size()
	if len(p) < size {
		return 0, ErrBufferTooSmall
	}
	w := NewBytesWriter(p[:size])
	if err := m.MarshalBenc(w); err != nil {
		return w.Len(), err
	}
	if w.Available() != 0 {
		return w.Len(), fmt.Errorf("%w: expected %d bytes, but wrote %d", ErrSizeMismatch, size, w.Len())
	}
	return size, nil
}

// Unmarshal decodes m from data and requires the whole buffer to be consumed.
// Leftover bytes mean the producer and consumer disagree about the layout.
func Unmarshal(data []byte, m Message) error {
	r := NewBytesReader(data)
	if err := m.UnmarshalBenc(r); err != nil {
		return err
	}
	if r.Available() != 0 {
		return fmt.Errorf("%w: %d of %d bytes unread", ErrTrailingData, r.Available(), len(data))
	}
	return nil
}

// messageCodec adapts a Message implementation to Codec so messages can be
// container elements.
type messageCodec[T any, PT interface {
	*T
	Message
}] struct{}

// MessageOf returns a Codec for T, whose pointer type implements Message.
//
//	records := benc.SliceOf(benc.MessageOf[Record]())
func MessageOf[T any, PT interface {
	*T
	Message
}]() Codec[T] {
	return messageCodec[T, PT]{}
}

func (messageCodec[T, PT]) Size(v T) int { return PT(&v).Size() }

func (messageCodec[T, PT]) Marshal(w *BytesWriter, v T) error { return PT(&v).MarshalBenc(w) }

func (messageCodec[T, PT]) Unmarshal(r *BytesReader) (T, error) {
	var v T
	err := PT(&v).UnmarshalBenc(r)
	return v, err
}

// Skip uses SkipBenc when the message provides it and otherwise decodes into a
// throwaway value.
func (messageCodec[T, PT]) Skip(r *BytesReader) error {
	var v T
	if s, ok := any(PT(&v)).(MessageSkipper); ok {
		return s.SkipBenc(r)
	}
	return PT(&v).UnmarshalBenc(r)
}
