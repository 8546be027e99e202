package fastpair

import (
	"crypto/sha256"
	"encoding/binary"
)

const bitsPerByte = 8

// bloomFilterTest reports whether data is possibly a member of the Bloom
// filter encoded in bits. The SHA-256 digest of data is
// consumed in 4-byte big-endian chunks; each chunk selects one bit of bits
// that must be set for data to be considered present.
func bloomFilterTest(data []byte, bits []byte) bool {
	if len(bits) == 0 {
		return false
	}
	digest := sha256.Sum256(data)
	numBits := len(bits) * bitsPerByte

	for i := 0; i < len(digest); i += 4 {
		h := binary.BigEndian.Uint32(digest[i : i+4])
		n := int(h) % numBits
		byteIndex := n / bitsPerByte
		bitIndex := uint(n % bitsPerByte)
		if bits[byteIndex]>>bitIndex&0x01 == 0 {
			return false
		}
	}
	return true
}
