// Package benc is a compact, schema-less binary encoding over in-memory buffers.
//
// Values are written to a caller-owned buffer through a BytesWriter and read
// back through a BytesReader. Every codec offers four operations: Size reports
// the exact encoded length so the caller can allocate once, Marshal writes,
// Unmarshal reads, and Skip moves past a value without building it.
//
// Wire format (multi-byte fixed fields are little-endian):
//
//	unsigned varint   base-128 groups, least significant first, at most 10
//	signed varint     zigzag, then unsigned varint
//	bool              1 byte: 1 is true, anything else decodes as false
//	fixed ints        1, 2, 4 or 8 bytes
//	floats            IEEE-754 bits
//	int, uint         always the 64-bit varint form
//	time.Time         int64 nanoseconds since the Unix epoch
//	string, []byte    varint length, then raw bytes
//	slice, map        varint count, elements, terminator 01 01 01 01
//	optional (*T)     presence byte, then the value if present
//
// A typical message composes field codecs in a fixed order:
//
//	func (m *Point) Size() int { return benc.SizeVarint(m.X) + benc.SizeVarint(m.Y) }
//
//	func (m *Point) MarshalBenc(w *benc.BytesWriter) error {
//		bw := benc.NewWriter(w)
//		bw.WriteVarint(m.X)
//		bw.WriteVarint(m.Y)
//		return bw.Err()
//	}
//
//	buf, err := benc.Marshal(&p)
//
// Nothing here is safe for concurrent use except BufPool and the codec registry.
package benc
