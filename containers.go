package benc

import (
	"cmp"
	"fmt"
	"slices"
)

// Slices and maps are framed as a varint element count, the elements, then
// Terminator. The count alone drives decoding; the terminator only catches a
// producer and consumer that disagree about the element codec.

// readTerminator consumes and checks the sentinel that closes a slice or map.
func readTerminator(r *BytesReader) error {
	b, err := r.Advance(TerminatorSize)
	if err != nil {
		return err
	}
	if [TerminatorSize]byte(b) != Terminator {
		return ErrMissingTerminator
	}
	return nil
}

func writeTerminator(w *BytesWriter) error {
	_, err := w.Write(Terminator[:])
	return err
}

// maxPrealloc caps the element capacity reserved up front for a decoded slice
// or map. Larger containers grow through append as elements actually decode.
const maxPrealloc = 4096

// capHint bounds a preallocation driven by an untrusted count. Every element
// takes at least one byte, so the count is also capped by the unread length.
func capHint(count uint64, r *BytesReader) int {
	return int(min(count, uint64(r.Available()), maxPrealloc))
}

// SizeSlice returns the number of bytes MarshalSlice writes for s.
// When c is a FixedSizer the element sizes are multiplied rather than summed.
func SizeSlice[T any](s []T, c Sizer[T]) int {
	if f, ok := c.(FixedSizer); ok {
		return SizeFixedSlice(s, f.FixedSize())
	}
	n := SizeUvarint(uint64(len(s))) + TerminatorSize
	for _, v := range s {
		n += c.Size(v)
	}
	return n
}

// SizeFixedSlice returns the size of a slice whose elements all occupy elemSize bytes.
func SizeFixedSlice[T any](s []T, elemSize int) int {
	return SizeUvarint(uint64(len(s))) + len(s)*elemSize + TerminatorSize
}

// MarshalSlice writes the length of s, every element in order, then the terminator.
func MarshalSlice[T any](w *BytesWriter, s []T, m Marshaler[T]) error {
	if err := MarshalUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	for i, v := range s {
		if err := m.Marshal(w, v); err != nil {
			return fmt.Errorf("benc: slice element %d: %w", i, err)
		}
	}
	return writeTerminator(w)
}

// UnmarshalSlice reads a slice written by MarshalSlice. It stops at the first
// element that fails. An empty slice decodes as a non-nil, zero-length slice.
func UnmarshalSlice[T any](r *BytesReader, u Unmarshaler[T]) ([]T, error) {
	count, err := UnmarshalUvarint(r)
	if err != nil {
		return nil, err
	}
	s := make([]T, 0, capHint(count, r))
	for i := uint64(0); i < count; i++ {
		v, err := u.Unmarshal(r)
		if err != nil {
			return nil, fmt.Errorf("benc: slice element %d: %w", i, err)
		}
		s = append(s, v)
	}
	if err := readTerminator(r); err != nil {
		return nil, err
	}
	return s, nil
}

// SkipSlice moves past a slice by skipping each element, then checks the terminator.
func SkipSlice(r *BytesReader, s Skipper) error {
	count, err := UnmarshalUvarint(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		if err := s.Skip(r); err != nil {
			return fmt.Errorf("benc: slice element %d: %w", i, err)
		}
	}
	return readTerminator(r)
}

// SizeMap returns the number of bytes MarshalMap writes for m.
func SizeMap[K comparable, V any](m map[K]V, ks Sizer[K], vs Sizer[V]) int {
	n := SizeUvarint(uint64(len(m))) + TerminatorSize
	kf, kFixed := ks.(FixedSizer)
	vf, vFixed := vs.(FixedSizer)
	if kFixed && vFixed {
		return n + len(m)*(kf.FixedSize()+vf.FixedSize())
	}
	for k, v := range m {
		n += ks.Size(k) + vs.Size(v)
	}
	return n
}

// MarshalMap writes the number of entries, each key followed by its value, then
// the terminator. Entries follow Go's map iteration order, so two calls on equal
// maps may produce different bytes; use MarshalSortedMap when that matters.
func MarshalMap[K comparable, V any](w *BytesWriter, m map[K]V, km Marshaler[K], vm Marshaler[V]) error {
	if err := MarshalUvarint(w, uint64(len(m))); err != nil {
		return err
	}
	i := 0
	for k, v := range m {
		if err := marshalEntry(w, i, k, v, km, vm); err != nil {
			return err
		}
		i++
	}
	return writeTerminator(w)
}

// MarshalSortedMap is MarshalMap with entries in ascending key order, giving
// byte-identical output for equal maps. The wire format is unchanged.
func MarshalSortedMap[K cmp.Ordered, V any](w *BytesWriter, m map[K]V, km Marshaler[K], vm Marshaler[V]) error {
	if err := MarshalUvarint(w, uint64(len(m))); err != nil {
		return err
	}
	// Sort entries rather than keys: a NaN key cannot be looked up again.
	entries := make([]entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, entry[K, V]{k, v})
	}
	slices.SortFunc(entries, func(a, b entry[K, V]) int { return cmp.Compare(a.key, b.key) })
	for i, e := range entries {
		if err := marshalEntry(w, i, e.key, e.value, km, vm); err != nil {
			return err
		}
	}
	return writeTerminator(w)
}

type entry[K, V any] struct {
	key   K
	value V
}

func marshalEntry[K, V any](w *BytesWriter, i int, k K, v V, km Marshaler[K], vm Marshaler[V]) error {
	if err := km.Marshal(w, k); err != nil {
		return fmt.Errorf("benc: map entry %d key: %w", i, err)
	}
	if err := vm.Marshal(w, v); err != nil {
		return fmt.Errorf("benc: map entry %d value: %w", i, err)
	}
	return nil
}

// UnmarshalMap reads a map written by MarshalMap. A key that appears more than
// once keeps the last value read.
func UnmarshalMap[K comparable, V any](r *BytesReader, ku Unmarshaler[K], vu Unmarshaler[V]) (map[K]V, error) {
	count, err := UnmarshalUvarint(r)
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, capHint(count, r))
	for i := uint64(0); i < count; i++ {
		k, err := ku.Unmarshal(r)
		if err != nil {
			return nil, fmt.Errorf("benc: map entry %d key: %w", i, err)
		}
		v, err := vu.Unmarshal(r)
		if err != nil {
			return nil, fmt.Errorf("benc: map entry %d value: %w", i, err)
		}
		m[k] = v
	}
	if err := readTerminator(r); err != nil {
		return nil, err
	}
	return m, nil
}

// SkipMap moves past a map by skipping each key and value, then checks the terminator.
func SkipMap(r *BytesReader, ks, vs Skipper) error {
	count, err := UnmarshalUvarint(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		if err := ks.Skip(r); err != nil {
			return fmt.Errorf("benc: map entry %d key: %w", i, err)
		}
		if err := vs.Skip(r); err != nil {
			return fmt.Errorf("benc: map entry %d value: %w", i, err)
		}
	}
	return readTerminator(r)
}

// Optional values are a presence byte, encoded like a bool, followed by the
// payload only when present. A nil pointer is absent and occupies one byte.

func SizeOptional[T any](v *T, s Sizer[T]) int {
	if v == nil {
		return BoolSize
	}
	return BoolSize + s.Size(*v)
}

func MarshalOptional[T any](w *BytesWriter, v *T, m Marshaler[T]) error {
	if err := MarshalBool(w, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return m.Marshal(w, *v)
}

// UnmarshalOptional returns nil when the presence byte is anything but 1.
func UnmarshalOptional[T any](r *BytesReader, u Unmarshaler[T]) (*T, error) {
	present, err := UnmarshalBool(r)
	if err != nil || !present {
		return nil, err
	}
	v, err := u.Unmarshal(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func SkipOptional(r *BytesReader, s Skipper) error {
	present, err := UnmarshalBool(r)
	if err != nil || !present {
		return err
	}
	return s.Skip(r)
}

type sliceCodec[T any] struct{ elem Codec[T] }

// SliceOf returns a Codec for []T built from an element codec.
func SliceOf[T any](elem Codec[T]) Codec[[]T] { return sliceCodec[T]{elem} }

func (c sliceCodec[T]) Size(s []T) int { return SizeSlice(s, c.elem) }
func (c sliceCodec[T]) Marshal(w *BytesWriter, s []T) error { return MarshalSlice(w, s, c.elem) }
func (c sliceCodec[T]) Unmarshal(r *BytesReader) ([]T, error) { return UnmarshalSlice(r, c.elem) }
func (c sliceCodec[T]) Skip(r *BytesReader) error { return SkipSlice(r, c.elem) }

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
}

// MapOf returns a Codec for map[K]V built from key and value codecs.
func MapOf[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key, value}
}

func (c mapCodec[K, V]) Size(m map[K]V) int { return SizeMap(m, c.key, c.value) }
func (c mapCodec[K, V]) Marshal(w *BytesWriter, m map[K]V) error {
	return MarshalMap(w, m, c.key, c.value)
}
func (c mapCodec[K, V]) Unmarshal(r *BytesReader) (map[K]V, error) {
	return UnmarshalMap(r, c.key, c.value)
}
func (c mapCodec[K, V]) Skip(r *BytesReader) error { return SkipMap(r, c.key, c.value) }

type sortedMapCodec[K cmp.Ordered, V any] struct{ mapCodec[K, V] }

// SortedMapOf is MapOf with deterministic, key-ordered marshalling.
func SortedMapOf[K cmp.Ordered, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return sortedMapCodec[K, V]{mapCodec[K, V]{key, value}}
}

func (c sortedMapCodec[K, V]) Marshal(w *BytesWriter, m map[K]V) error {
	return MarshalSortedMap(w, m, c.key, c.value)
}

type optionalCodec[T any] struct{ elem Codec[T] }

// OptionalOf returns a Codec for *T, where nil means absent.
func OptionalOf[T any](elem Codec[T]) Codec[*T] { return optionalCodec[T]{elem} }

func (c optionalCodec[T]) Size(v *T) int { return SizeOptional(v, c.elem) }
func (c optionalCodec[T]) Marshal(w *BytesWriter, v *T) error { return MarshalOptional(w, v, c.elem) }
func (c optionalCodec[T]) Unmarshal(r *BytesReader) (*T, error) { return UnmarshalOptional(r, c.elem) }
func (c optionalCodec[T]) Skip(r *BytesReader) error { return SkipOptional(r, c.elem) }
