package pool

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse. Buffers that grew far beyond
// the pool size are dropped so one huge path does not pin memory.
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > 64*bp.size {
		return
	}
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// CaserPool implements a pool of lowercase casers.
// A cases.Caser keeps state between calls and must not be shared between
// goroutines, so every caller borrows its own.
type CaserPool struct {
	pool sync.Pool
}

// NewCaserPool creates a pool of language-independent lowercase casers
func NewCaserPool() *CaserPool {
	return &CaserPool{
		pool: sync.Pool{
			New: func() interface{} {
				caser := cases.Lower(language.Und)
				return &caser
			},
		},
	}
}

// Get retrieves a reset caser from the pool
func (cp *CaserPool) Get() *cases.Caser {
	caser := cp.pool.Get().(*cases.Caser)
	caser.Reset()
	return caser
}

// Put returns a caser to the pool
func (cp *CaserPool) Put(caser *cases.Caser) {
	cp.pool.Put(caser)
}
