package fastpair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshakeLookup_GetOrCreate_ReusesCompleted(t *testing.T) {
	lookup := NewHandshakeLookup()
	defer lookup.Stop()

	device := NewFastPairDevice("aabbcc", "11:22:33:44:55:66", ProtocolInitialPairing)

	created := 0
	h := lookup.GetOrCreate(device, func() *Handshake {
		created++
		h := NewHandshake(device, nil, nil)
		h.completedSuccessfully = true
		return h
	})
	require.Equal(t, 1, created)
	assert.True(t, h.CompletedSuccessfully())

	again := lookup.GetOrCreate(device, func() *Handshake {
		created++
		return NewHandshake(device, nil, nil)
	})
	assert.Same(t, h, again)
	assert.Equal(t, 1, created, "a completed handshake must be reused, not rebuilt")
}

func TestHandshakeLookup_GetOrCreate_EvictsIncomplete(t *testing.T) {
	lookup := NewHandshakeLookup()
	defer lookup.Stop()

	device := NewFastPairDevice("aabbcc", "11:22:33:44:55:66", ProtocolInitialPairing)

	first := lookup.GetOrCreate(device, func() *Handshake {
		return NewHandshake(device, nil, nil)
	})
	assert.False(t, first.CompletedSuccessfully())

	second := lookup.GetOrCreate(device, func() *Handshake {
		return NewHandshake(device, nil, nil)
	})
	assert.NotSame(t, first, second, "an incomplete handshake must be replaced on re-entry")
}

func TestHandshakeLookup_ResolvesByAnyOfThreeKeys(t *testing.T) {
	lookup := NewHandshakeLookup()
	defer lookup.Stop()

	device := NewFastPairDevice("aabbcc", "11:22:33:44:55:66", ProtocolInitialPairing)
	device.SetPublicAddress("ba:bb:cc:dd:ee:ff")

	h := lookup.GetOrCreate(device, func() *Handshake {
		h := NewHandshake(device, nil, nil)
		h.completedSuccessfully = true
		return h
	})

	bySurrogate, ok := lookup.Get(device)
	require.True(t, ok)
	assert.Same(t, h, bySurrogate)

	byAddrDevice := NewFastPairDevice("aabbcc", "11:22:33:44:55:66", ProtocolInitialPairing)
	byBLE, ok := lookup.Get(byAddrDevice)
	require.True(t, ok)
	assert.Same(t, h, byBLE)

	byPublicDevice := NewFastPairDevice("aabbcc", "not-the-same-address", ProtocolInitialPairing)
	byPublicDevice.SetPublicAddress("ba:bb:cc:dd:ee:ff")
	byPublic, ok := lookup.Get(byPublicDevice)
	require.True(t, ok)
	assert.Same(t, h, byPublic)
}

func TestHandshakeLookup_Erase(t *testing.T) {
	lookup := NewHandshakeLookup()
	defer lookup.Stop()

	device := NewFastPairDevice("aabbcc", "11:22:33:44:55:66", ProtocolInitialPairing)
	lookup.GetOrCreate(device, func() *Handshake { return NewHandshake(device, nil, nil) })

	lookup.Erase(device)
	_, ok := lookup.Get(device)
	assert.False(t, ok)
}
