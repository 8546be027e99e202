package fastpair_test

import (
	"testing"

	fastpair "github.com/fastpair-go/seeker"
	"github.com/fastpair-go/seeker/seekertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshake_CompletesAndSetsPublicAddress(t *testing.T) {
	cfg := fastpair.DefaultConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()

	device := fastpair.NewFastPairDevice("aabbcc", "11:22:33:44:55:66", fastpair.ProtocolSubsequentPairing)
	key := fastpair.AccountKey{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	device.SetAccountKey(key)

	gattFake := seekertest.NewFakeGattClient()
	keyBasedChar := fastpair.GattCharacteristic{ServiceUUID: fastpair.FastPairServiceUUID, CharacteristicUUID: fastpair.KeyBasedCharacteristicUUIDV2}
	gattFake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.KeyBasedCharacteristicUUIDV2)
	gattFake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.PasskeyCharacteristicUUIDV2)
	gattFake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.AccountKeyCharacteristicUUIDV2)

	gatt := fastpair.NewFastPairGattServiceClient(gattFake, device.BleAddress(), cfg, executor)
	handshake := fastpair.NewHandshake(device, gatt, nil)

	enc := fastpair.NewDataEncryptorFromAccountKey(key)
	var responsePlaintext [16]byte
	responsePlaintext[0] = byte(fastpair.MessageTypeKeyBasedPairingResponse)
	copy(responsePlaintext[1:7], []byte{0xBA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	for i := 7; i < 16; i++ {
		responsePlaintext[i] = byte(i)
	}
	responseCiphertext, err := enc.Encrypt(responsePlaintext)
	require.NoError(t, err)

	var gotEnc *fastpair.DataEncryptor
	var gotFailure *fastpair.PairFailure
	handshake.Run(func(e *fastpair.DataEncryptor, f *fastpair.PairFailure) {
		gotEnc = e
		gotFailure = f
	})

	gattFake.Notify(keyBasedChar, responseCiphertext[:])

	require.Nil(t, gotFailure)
	require.NotNil(t, gotEnc)
	assert.True(t, handshake.CompletedSuccessfully())
	assert.Equal(t, "ba:bb:cc:dd:ee:ff", device.PublicAddress())
}

func TestHandshake_FailsWithoutKeyMaterial(t *testing.T) {
	cfg := fastpair.DefaultConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()

	device := fastpair.NewFastPairDevice("aabbcc", "11:22:33:44:55:66", fastpair.ProtocolInitialPairing)

	gattFake := seekertest.NewFakeGattClient()
	gattFake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.KeyBasedCharacteristicUUIDV2)
	gattFake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.PasskeyCharacteristicUUIDV2)
	gattFake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.AccountKeyCharacteristicUUIDV2)

	gatt := fastpair.NewFastPairGattServiceClient(gattFake, device.BleAddress(), cfg, executor)
	handshake := fastpair.NewHandshake(device, gatt, nil)

	var gotFailure *fastpair.PairFailure
	handshake.Run(func(e *fastpair.DataEncryptor, f *fastpair.PairFailure) {
		gotFailure = f
	})

	require.NotNil(t, gotFailure)
	assert.Equal(t, fastpair.PairFailureDataEncryptorRetrieval, *gotFailure)
	assert.False(t, handshake.CompletedSuccessfully())
}
