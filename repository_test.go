package fastpair

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountKeyPublicAddressHash_Deterministic(t *testing.T) {
	key := AccountKey{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	addr := [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	h1 := AccountKeyPublicAddressHash(key, addr)
	h2 := AccountKeyPublicAddressHash(key, addr)
	assert.Equal(t, h1, h2)

	other := AccountKeyPublicAddressHash(key, [6]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	assert.NotEqual(t, h1, other)
}

func TestIsForgotten(t *testing.T) {
	var hash [32]byte
	binary.BigEndian.PutUint32(hash[:4], binary.BigEndian.Uint32(forgetPatternPrefix[:]))
	assert.True(t, IsForgotten(hash))

	var notForgotten [32]byte
	copy(notForgotten[:], []byte{0x01, 0x02, 0x03, 0x04})
	assert.False(t, IsForgotten(notForgotten))
}
