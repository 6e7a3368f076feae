// Package compress provides the payload codecs of a record image.
//
// A record image is the bytes of one RawBuffer wrapped in a small header
// (see package image). The payload may be stored raw or compressed with one
// of the codecs below, selected by format.CompressionType:
//
//   - None: the payload is the record bytes.
//   - Zstd: best ratio. Text-heavy records with long runs of spaces shrink
//     the most.
//   - S2: fast, moderate ratio.
//   - LZ4: fastest decompression.
//
// All codecs are safe for concurrent use. Encoders and decoders that carry
// warm-up state are pooled.
//
// # Build tags
//
// Zstd uses the pure Go github.com/klauspost/compress/zstd by default.
// Building with -tags gozstd and cgo enabled switches to the cgo binding
// github.com/valyala/gozstd. Both produce standard zstd frames, so images
// written by one decode with the other.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	payload, err := codec.Compress(raw)
package compress
