package benc

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// registry maps Go types to their default codec. Using a concurrent map keeps
// lookups lock-free once codecs are registered.
var registry = xsync.NewMap[reflect.Type, any]()

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register makes c the default codec for T, replacing any earlier registration.
func Register[T any](c Codec[T]) {
	registry.Store(typeOf[T](), c)
}

// Lookup returns the default codec registered for T.
func Lookup[T any]() (Codec[T], bool) {
	v, ok := registry.Load(typeOf[T]())
	if !ok {
		return nil, false
	}
	c, ok := v.(Codec[T])
	return c, ok
}

// MustLookup is like Lookup but panics when no codec is registered for T.
func MustLookup[T any]() Codec[T] {
	c, ok := Lookup[T]()
	if !ok {
		panic("benc: no codec registered for " + typeOf[T]().String())
	}
	return c
}

// The built-in defaults. Sized integers use their fixed-width form; the
// platform-width int, uint and uintptr use varints.
func init() {
	Register(Bool)
	Register(Uint8)
	Register(Int8)
	Register(Uint16)
	Register(Int16)
	Register(Uint32)
	Register(Int32)
	Register(Uint64)
	Register(Int64)
	Register(Float32)
	Register(Float64)
	Register(Complex64)
	Register(Complex128)
	Register(Int)
	Register(Uint)
	Register(Uintptr)
	Register(String)
	Register(Bytes)
	Register(Time)
}
