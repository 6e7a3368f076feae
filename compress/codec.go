package compress

import (
	"fmt"
	"time"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
)

// Compressor compresses a record image payload.
//
// The returned slice is owned by the caller except for the None codec,
// which returns its input.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload written by the matching Compressor.
//
// It returns an error when data is corrupted or was written by another
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression of a payload.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
	Elapsed        time.Duration
}

// Ratio returns compressed size over original size, 0 for an empty payload.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved share of the original size as a percentage.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

// Measure compresses data with the built-in codec for ct and reports the result.
func Measure(ct format.CompressionType, data []byte) (Stats, error) {
	codec, err := GetCodec(ct)
	if err != nil {
		return Stats{}, err
	}
	start := time.Now()
	out, err := codec.Compress(data)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Algorithm:      ct,
		OriginalSize:   len(data),
		CompressedSize: len(out),
		Elapsed:        time.Since(start),
	}, nil
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for ct.
func GetCodec(ct format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[ct]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type %s", errs.ErrInvalidArgument, ct)
}
