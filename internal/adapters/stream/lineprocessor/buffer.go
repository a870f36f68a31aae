package lineprocessor

import "sync"

// ChunkBuffer represents a buffer for reading chunks of input
type ChunkBuffer struct {
	Bytes []byte
}

// ChunkBufferPool implements a pool of chunk buffers
type ChunkBufferPool struct {
	pool sync.Pool
}

// NewChunkBufferPool creates a new chunk buffer pool with buffers of size bytes
func NewChunkBufferPool(size int) *ChunkBufferPool {
	return &ChunkBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &ChunkBuffer{Bytes: make([]byte, size)}
			},
		},
	}
}

// Get retrieves a chunk buffer from the pool
func (cbp *ChunkBufferPool) Get() *ChunkBuffer {
	return cbp.pool.Get().(*ChunkBuffer)
}

// Put returns a chunk buffer to the pool
func (cbp *ChunkBufferPool) Put(cb *ChunkBuffer) {
	cbp.pool.Put(cb)
}
