package benc

import "encoding/binary"

// Order is the byte order of every multi-byte fixed-width field on the wire.
// It is not configurable.
var Order = binary.LittleEndian

// Terminator is appended after every slice and map payload. It only detects
// desynchronised or corrupted input; element boundaries come from the count prefix.
var Terminator = [4]byte{1, 1, 1, 1}

// TerminatorSize is the wire width of Terminator.
const TerminatorSize = len(Terminator)

// Ptr returns a pointer to a copy of v, handy for optional values.
func Ptr[T any](v T) *T { return &v }
