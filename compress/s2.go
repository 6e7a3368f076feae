package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/kansasdcf/legacyrec/errs"
)

// S2Compressor writes S2 blocks.
//
// Record images are dominated by runs of spaces and zero digits, so the
// default uses the better (slower) match finder.
type S2Compressor struct {
	fast bool
}

var _ Codec = S2Compressor{}

// NewS2Compressor returns the S2 codec that favors ratio.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// NewFastS2Compressor returns the S2 codec that favors speed.
func NewFastS2Compressor() S2Compressor {
	return S2Compressor{fast: true}
}

// Compress encodes data as one S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if c.fast {
		return s2.Encode(nil, data), nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes one S2 block, refusing blocks that claim more than
// maxPayloadSize bytes.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > maxPayloadSize {
		return nil, fmt.Errorf("%w: s2 block decodes to %d bytes", errs.ErrInvalidArgument, n)
	}

	return s2.Decode(make([]byte, n), data)
}
