//go:build gozstd && cgo

package compress

import (
	"github.com/valyala/gozstd"
)

// ZstdCompressor writes zstd frames through the cgo libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Compress compresses data into a single zstd frame at level 3.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decodes a zstd frame.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
