// Package buffer provides RawBuffer, the byte storage a record overlays.
//
// A RawBuffer starts either fixed (its length never changes) or growable
// (bytes are appended while a record image is assembled). Finalize turns a
// growable buffer into a fixed one by copying the bytes out of the pooled
// scratch buffer; from then on writes must fit inside the existing length.
//
// # Thread Safety
//
// Concurrent reads are safe, and so are concurrent writes to disjoint byte
// ranges of a fixed buffer. Writers to overlapping ranges, and any use of
// Append or Finalize, must be synchronized by the caller.
package buffer

import (
	"fmt"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/internal/pool"
)

// RawBuffer owns the bytes of one record.
type RawBuffer struct {
	data   []byte
	grow   *pool.ByteBuffer // nil once fixed
	closed bool
}

// NewFixed returns a fixed buffer of n bytes, every byte set to fill.
func NewFixed(n int, fill byte) *RawBuffer {
	data := make([]byte, n)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}

	return &RawBuffer{data: data}
}

// FromBytes returns a fixed buffer holding a copy of b.
func FromBytes(b []byte) *RawBuffer {
	data := make([]byte, len(b))
	copy(data, b)

	return &RawBuffer{data: data}
}

// NewGrowable returns an empty buffer that accepts Append until Finalize.
func NewGrowable() *RawBuffer {
	return &RawBuffer{grow: pool.GetRecordBuffer()}
}

// IsFixed reports whether the buffer length can no longer change.
func (rb *RawBuffer) IsFixed() bool {
	return rb.grow == nil
}

// Len returns the current length in bytes.
func (rb *RawBuffer) Len() int {
	if rb.grow != nil {
		return rb.grow.Len()
	}

	return len(rb.data)
}

// Append adds data to the end of a growable buffer and returns its offset.
func (rb *RawBuffer) Append(data []byte) (int, error) {
	if rb.grow == nil {
		return 0, errs.ErrBufferNotGrowing
	}
	off := rb.grow.Len()
	_, _ = rb.grow.Write(data)

	return off, nil
}

// AppendRepeat adds n copies of b to a growable buffer and returns the offset.
func (rb *RawBuffer) AppendRepeat(b byte, n int) (int, error) {
	if rb.grow == nil {
		return 0, errs.ErrBufferNotGrowing
	}
	off := rb.grow.Len()
	rb.grow.WriteRepeat(b, n)

	return off, nil
}

// Finalize copies a growable buffer into fixed storage sized to its length.
//
// The pooled scratch buffer is released. Calling Finalize twice fails with
// ErrBufferFinalized.
func (rb *RawBuffer) Finalize() error {
	if rb.grow == nil {
		if rb.closed {
			return errs.ErrBufferFinalized
		}
		rb.closed = true

		return nil
	}

	rb.data = make([]byte, rb.grow.Len())
	copy(rb.data, rb.grow.Bytes())
	pool.PutRecordBuffer(rb.grow)
	rb.grow = nil
	rb.closed = true

	return nil
}

func (rb *RawBuffer) bytes() []byte {
	if rb.grow != nil {
		return rb.grow.Bytes()
	}

	return rb.data
}

func (rb *RawBuffer) check(off, n int) error {
	if off < 0 || n < 0 || off+n > rb.Len() {
		return fmt.Errorf("%w: [%d:%d] of %d", errs.ErrOutOfBounds, off, off+n, rb.Len())
	}

	return nil
}

// Read returns a copy of n bytes starting at off.
func (rb *RawBuffer) Read(off, n int) ([]byte, error) {
	if err := rb.check(off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, rb.bytes()[off:off+n])

	return out, nil
}

// View returns the n bytes at off without copying.
//
// The slice aliases the buffer; callers must not modify it and must not keep
// it past the next Append.
func (rb *RawBuffer) View(off, n int) ([]byte, error) {
	if err := rb.check(off, n); err != nil {
		return nil, err
	}

	return rb.bytes()[off : off+n : off+n], nil
}

// Bytes returns a read-only view of the whole buffer.
func (rb *RawBuffer) Bytes() []byte {
	b := rb.bytes()
	return b[:len(b):len(b)]
}

// Write copies data to off. The write must fit inside the current length.
func (rb *RawBuffer) Write(off int, data []byte) error {
	if err := rb.check(off, len(data)); err != nil {
		return err
	}
	copy(rb.bytes()[off:], data)

	return nil
}

// WriteExact copies data to off after checking it is exactly n bytes long.
func (rb *RawBuffer) WriteExact(off, n int, data []byte) error {
	if len(data) != n {
		return fmt.Errorf("%w: got %d bytes, range holds %d", errs.ErrLengthMismatch, len(data), n)
	}

	return rb.Write(off, data)
}

// Fill sets n bytes starting at off to b.
func (rb *RawBuffer) Fill(off, n int, b byte) error {
	if err := rb.check(off, n); err != nil {
		return err
	}
	region := rb.bytes()[off : off+n]
	for i := range region {
		region[i] = b
	}

	return nil
}

// Clone returns a fixed deep copy.
func (rb *RawBuffer) Clone() *RawBuffer {
	return FromBytes(rb.bytes())
}
