package hash

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// NameID computes the lookup id of an element name.
//
// Data names are case-insensitive on the legacy platform, so "CUST-ID" and
// "cust-id" share an id.
func NameID(name string) uint64 {
	return ID(strings.ToUpper(strings.TrimSpace(name)))
}

// Checksum computes the xxHash64 of a record image.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
