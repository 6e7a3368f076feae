// Package endian provides the byte order used by legacy binary fields.
//
// Mainframe records store binary integers (COMP / COMP-4) and floating point
// values most-significant byte first. This package wraps encoding/binary so
// field codecs can read and write fixed-width two's-complement integers of
// width 2, 4 or 8 without repeating the width switch.
//
// # Basic Usage
//
//	engine := endian.GetBigEndianEngine()
//	buf := make([]byte, 4)
//	endian.PutInt(engine, buf, -1) // ff ff ff ff
//	v, _ := endian.Int(engine, buf) // -1
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores integers like the mainframe does.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
//
// Only used for reading records produced by a re-hosted runtime that kept
// host byte order for binary items.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Int decodes a two's-complement integer whose width is len(b).
//
// Returns an error when len(b) is not 2, 4 or 8.
func Int(engine EndianEngine, b []byte) (int64, error) {
	switch len(b) {
	case 2:
		return int64(int16(engine.Uint16(b))), nil
	case 4:
		return int64(int32(engine.Uint32(b))), nil
	case 8:
		return int64(engine.Uint64(b)), nil
	default:
		return 0, fmt.Errorf("unsupported binary integer width %d", len(b))
	}
}

// PutInt encodes v as a two's-complement integer filling all of b.
//
// The value is truncated to the width of b, the same way a MOVE into a
// binary item keeps only the low-order bytes. Returns an error when len(b)
// is not 2, 4 or 8.
func PutInt(engine EndianEngine, b []byte, v int64) error {
	switch len(b) {
	case 2:
		engine.PutUint16(b, uint16(v))
	case 4:
		engine.PutUint32(b, uint32(v))
	case 8:
		engine.PutUint64(b, uint64(v))
	default:
		return fmt.Errorf("unsupported binary integer width %d", len(b))
	}

	return nil
}
