// Package serializer converts between logical values and the bytes of a
// single fixed-layout field.
//
// A Serializer is bound to one locale.Config and is safe for concurrent use.
// Serialize always returns exactly the requested number of bytes: text is
// padded with spaces on the right, zoned and packed numbers are padded on
// the left and truncated from the left so the low-order digits survive.
//
// A few conversions deliberately read malformed input as zero instead of
// failing: text moved into an unsigned numeric field and unparsable unsigned
// zoned bytes. Each such substitution is logged at debug level.
package serializer
