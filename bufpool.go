package benc

import (
	"fmt"
	"sync"
)

// DefaultBufferSize is the size of each pooled buffer unless WithBufferSize overrides it.
const DefaultBufferSize = 1024

type options struct {
	bufSize int
}

// Option configures a BufPool.
type Option func(*options)

// WithBufferSize sets the size of every buffer in the pool. Messages larger
// than this cannot be marshalled through the pool.
func WithBufferSize(size int) Option {
	return func(o *options) {
		o.bufSize = size
	}
}

// BufPool reuses marshal buffers to reduce GC pressure on hot encode paths.
// It is safe for concurrent use. The zero value is ready to use with
// DefaultBufferSize buffers.
type BufPool struct {
	BufSize int
	p       sync.Pool
}

// NewBufPool creates a pool of fixed-size marshal buffers.
// A non-positive WithBufferSize falls back to DefaultBufferSize.
func NewBufPool(opts ...Option) *BufPool {
	o := options{bufSize: DefaultBufferSize}
	for _, fn := range opts {
		fn(&o)
	}
	if o.bufSize <= 0 {
		o.bufSize = DefaultBufferSize
	}
	return &BufPool{BufSize: o.bufSize}
}

func (bp *BufPool) bufSize() int {
	if bp.BufSize <= 0 {
		return DefaultBufferSize
	}
	return bp.BufSize
}

// get returns a pooled buffer of at least bufSize bytes.
func (bp *BufPool) get() *[]byte {
	if ptr, ok := bp.p.Get().(*[]byte); ok && len(*ptr) >= bp.bufSize() {
		return ptr
	}
	b := make([]byte, bp.bufSize())
	return &b
}

// Marshal encodes m into a pooled buffer and passes the encoded bytes to consume.
// The slice is only valid during consume; it returns to the pool afterwards,
// so consume must copy anything it wants to keep.
func (bp *BufPool) Marshal(m Message, consume func(b []byte) error) error {
	size, limit := m.Size(), bp.bufSize()
	if size > limit {
		return fmt.Errorf("%w: message needs %d bytes, pool buffers hold %d", ErrPoolBufferTooSmall, size, limit)
	}
	ptr := bp.get()
	defer bp.p.Put(ptr)

	b := (*ptr)[:size]
	if _, err := MarshalTo(b, m); err != nil {
		return err
	}
	return consume(b)
}
