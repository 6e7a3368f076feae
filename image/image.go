package image

import (
	"fmt"
	"math"

	"github.com/kansasdcf/legacyrec/buffer"
	"github.com/kansasdcf/legacyrec/compress"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/internal/hash"
	"github.com/kansasdcf/legacyrec/internal/pool"
)

// Encode wraps raw record bytes in an image compressed with ct.
func Encode(raw []byte, ct format.CompressionType) ([]byte, error) {
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, errs.Argumentf("record bytes", "%d bytes exceed the image limit", len(raw))
	}
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", ct, err)
	}

	h := Header{
		Version:     Version,
		Compression: ct,
		RawLength:   uint32(len(raw)),
		Checksum:    hash.Checksum(raw),
	}

	bb := pool.GetImageBuffer()
	defer pool.PutImageBuffer(bb)

	bb.Grow(HeaderSize + len(payload))
	bb.B = bb.B[:HeaderSize]
	h.put(bb.B)
	_, _ = bb.Write(payload)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// EncodeBuffer is Encode over the bytes of rb.
func EncodeBuffer(rb *buffer.RawBuffer, ct format.CompressionType) ([]byte, error) {
	if rb == nil {
		return nil, errs.Argumentf("buffer", "must not be nil")
	}

	return Encode(rb.Bytes(), ct)
}

// Decode returns the record bytes of an image after verifying them.
func Decode(data []byte) ([]byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidImage, err)
	}

	raw, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidImage, err)
	}
	if len(raw) != int(h.RawLength) {
		return nil, fmt.Errorf("%w: payload holds %d bytes, header says %d", errs.ErrInvalidImage, len(raw), h.RawLength)
	}
	if sum := hash.Checksum(raw); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	// The None codec returns a view of data.
	out := make([]byte, len(raw))
	copy(out, raw)

	return out, nil
}

// DecodeBuffer is Decode into a fixed RawBuffer.
func DecodeBuffer(data []byte) (*buffer.RawBuffer, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return buffer.FromBytes(raw), nil
}
