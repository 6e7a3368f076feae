package pool

import (
	"sync"
)

const (
	RecordBufferDefaultSize  = 1024 * 4   // 4KiB, larger than most 01-level records
	RecordBufferMaxThreshold = 1024 * 64  // 64KiB
	ImageBufferDefaultSize   = 1024 * 16  // 16KiB
	ImageBufferMaxThreshold  = 1024 * 256 // 256KiB
)

// ByteBuffer is an append-only scratch buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures requiredBytes more bytes fit without reallocating.
//
// Small buffers grow by RecordBufferDefaultSize, larger ones by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := RecordBufferDefaultSize
	if cap(bb.B) > 4*RecordBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data, growing as needed. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteRepeat appends n copies of b.
func (bb *ByteBuffer) WriteRepeat(b byte, n int) {
	bb.Grow(n)
	for range n {
		bb.B = append(bb.B, b)
	}
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops buffers grown past maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	recordDefaultPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
	imageDefaultPool  = NewByteBufferPool(ImageBufferDefaultSize, ImageBufferMaxThreshold)
)

// GetRecordBuffer retrieves a buffer for assembling a growable record.
func GetRecordBuffer() *ByteBuffer {
	return recordDefaultPool.Get()
}

// PutRecordBuffer returns a record buffer to the pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordDefaultPool.Put(bb)
}

// GetImageBuffer retrieves a buffer for assembling a record image envelope.
func GetImageBuffer() *ByteBuffer {
	return imageDefaultPool.Get()
}

// PutImageBuffer returns an image buffer to the pool.
func PutImageBuffer(bb *ByteBuffer) {
	imageDefaultPool.Put(bb)
}
