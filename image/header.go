// Package image wraps record bytes in a self-describing envelope.
//
// An image is a 16-byte big-endian header followed by the payload:
//
//	offset  size  field
//	0       2     magic 0xEC1D
//	2       1     version
//	3       1     compression type (format.CompressionType)
//	4       4     raw length of the record bytes
//	8       8     xxHash64 of the record bytes
//	16      ...   payload, compressed as the header says
//
// Decode verifies the length and checksum after decompression, so a
// truncated or altered image never yields record bytes.
package image

import (
	"fmt"

	"github.com/kansasdcf/legacyrec/endian"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
)

const (
	// Magic opens every image.
	Magic uint16 = 0xEC1D
	// Version is the envelope version written by Encode.
	Version uint8 = 1
	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 16
)

// Header is the fixed envelope in front of an image payload.
type Header struct {
	Version     uint8                  // byte offset 2
	Compression format.CompressionType // byte offset 3
	RawLength   uint32                 // byte offset 4-7
	Checksum    uint64                 // byte offset 8-15
}

// Parse reads the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrInvalidImage, len(data), HeaderSize)
	}

	engine := endian.GetBigEndianEngine()
	if magic := engine.Uint16(data[0:2]); magic != Magic {
		return fmt.Errorf("%w: bad magic 0x%04X", errs.ErrInvalidImage, magic)
	}
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.RawLength = engine.Uint32(data[4:8])
	h.Checksum = engine.Uint64(data[8:16])

	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidImage, h.Version)
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.put(b)

	return b
}

func (h *Header) put(b []byte) {
	engine := endian.GetBigEndianEngine()
	engine.PutUint16(b[0:2], Magic)
	b[2] = h.Version
	b[3] = byte(h.Compression)
	engine.PutUint32(b[4:8], h.RawLength)
	engine.PutUint64(b[8:16], h.Checksum)
}

// ParseHeader parses the header at the start of an image.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidImage, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
