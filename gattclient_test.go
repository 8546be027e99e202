package fastpair_test

import (
	"testing"

	fastpair "github.com/fastpair-go/seeker"
	"github.com/fastpair-go/seeker/seekertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInitTestConfig() fastpair.Config {
	cfg := fastpair.DefaultConfig()
	cfg.MaxGattConnectionAttempts = 2
	return cfg
}

func TestGattServiceClient_InitializesWithV2Characteristics(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.KeyBasedCharacteristicUUIDV2)
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.PasskeyCharacteristicUUIDV2)
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.AccountKeyCharacteristicUUIDV2)

	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := fastpair.NewFastPairGattServiceClient(fake, "aa:bb:cc:dd:ee:ff", cfg, executor)

	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.InitializeGattConnection(func(f *fastpair.PairFailure) {
		failure = f
		close(done)
	})
	<-done

	assert.Nil(t, failure)
}

func TestGattServiceClient_FallsBackToV1Characteristics(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.KeyBasedCharacteristicUUIDV1)
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.PasskeyCharacteristicUUIDV1)
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.AccountKeyCharacteristicUUIDV1)

	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := fastpair.NewFastPairGattServiceClient(fake, "aa:bb:cc:dd:ee:ff", cfg, executor)

	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.InitializeGattConnection(func(f *fastpair.PairFailure) {
		failure = f
		close(done)
	})
	<-done

	assert.Nil(t, failure)
}

func TestGattServiceClient_MissingCharacteristicFailsDiscovery(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.KeyBasedCharacteristicUUIDV2)
	// Passkey and account-key characteristics deliberately left unregistered.

	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := fastpair.NewFastPairGattServiceClient(fake, "aa:bb:cc:dd:ee:ff", cfg, executor)

	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.InitializeGattConnection(func(f *fastpair.PairFailure) {
		failure = f
		close(done)
	})
	<-done

	require.NotNil(t, failure)
	assert.Equal(t, fastpair.PairFailurePasskeyCharacteristicDiscovery, *failure)
}

func TestGattServiceClient_ConnectFailureExhaustsAttempts(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	fake.ConnectResult = false

	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := fastpair.NewFastPairGattServiceClient(fake, "aa:bb:cc:dd:ee:ff", cfg, executor)

	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.InitializeGattConnection(func(f *fastpair.PairFailure) {
		failure = f
		close(done)
	})
	<-done

	require.NotNil(t, failure)
	assert.Equal(t, fastpair.PairFailureCreateGattConnection, *failure)
}

func TestGattServiceClient_DiscoveryFailureExhaustsAttempts(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	fake.DiscoverResult = false

	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := fastpair.NewFastPairGattServiceClient(fake, "aa:bb:cc:dd:ee:ff", cfg, executor)

	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.InitializeGattConnection(func(f *fastpair.PairFailure) {
		failure = f
		close(done)
	})
	<-done

	require.NotNil(t, failure)
	assert.Equal(t, fastpair.PairFailureCreateGattConnection, *failure)
}

func initializedGattClient(t *testing.T, fake *seekertest.FakeGattClient, cfg fastpair.Config, executor *fastpair.Executor) *fastpair.FastPairGattServiceClient {
	t.Helper()
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.KeyBasedCharacteristicUUIDV2)
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.PasskeyCharacteristicUUIDV2)
	fake.AddCharacteristic(fastpair.FastPairServiceUUID, fastpair.AccountKeyCharacteristicUUIDV2)

	client := fastpair.NewFastPairGattServiceClient(fake, "aa:bb:cc:dd:ee:ff", cfg, executor)
	done := make(chan struct{})
	client.InitializeGattConnection(func(f *fastpair.PairFailure) {
		require.Nil(t, f)
		close(done)
	})
	<-done
	return client
}

func TestGattServiceClient_WriteRequestRoundTrip(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := initializedGattClient(t, fake, cfg, executor)

	key := fastpair.AccountKey{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	enc := fastpair.NewDataEncryptorFromAccountKey(key)

	var response []byte
	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.WriteRequestAsync(byte(fastpair.MessageTypeKeyBasedPairingRequest), 0, [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, nil, enc, func(r []byte, f *fastpair.PairFailure) {
		response = r
		failure = f
		close(done)
	})

	keyBasedChar := fastpair.GattCharacteristic{ServiceUUID: fastpair.FastPairServiceUUID, CharacteristicUUID: fastpair.KeyBasedCharacteristicUUIDV2}
	require.Contains(t, fake.Writes(), keyBasedChar)

	expected := []byte{0x01, 0x02, 0x03}
	fake.Notify(keyBasedChar, expected)
	<-done

	assert.Nil(t, failure)
	assert.Equal(t, expected, response)
}

func TestGattServiceClient_WriteRequestFailureOnWriteError(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	fake.WriteResult = false
	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := initializedGattClient(t, fake, cfg, executor)

	key := fastpair.AccountKey{}
	enc := fastpair.NewDataEncryptorFromAccountKey(key)

	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.WriteRequestAsync(byte(fastpair.MessageTypeKeyBasedPairingRequest), 0, [6]byte{}, nil, enc, func(r []byte, f *fastpair.PairFailure) {
		failure = f
		close(done)
	})
	<-done

	require.NotNil(t, failure)
	assert.Equal(t, fastpair.PairFailureKeyBasedPairingCharacteristicWrite, *failure)
}

func TestGattServiceClient_WriteAccountKeyRoundTrip(t *testing.T) {
	fake := seekertest.NewFakeGattClient()
	cfg := newInitTestConfig()
	executor := fastpair.NewExecutor(cfg.ExecutorQueueDepth)
	defer executor.Shutdown()
	client := initializedGattClient(t, fake, cfg, executor)

	key := fastpair.AccountKey{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	enc := fastpair.NewDataEncryptorFromAccountKey(key)

	var written fastpair.AccountKey
	var failure *fastpair.PairFailure
	done := make(chan struct{})
	client.WriteAccountKey(key, enc, func(k fastpair.AccountKey, f *fastpair.PairFailure) {
		written = k
		failure = f
		close(done)
	})
	<-done

	assert.Nil(t, failure)
	want := key
	want[0] = 0x04
	assert.Equal(t, want, written)
	assert.NotEqual(t, key, written)

	accountChar := fastpair.GattCharacteristic{ServiceUUID: fastpair.FastPairServiceUUID, CharacteristicUUID: fastpair.AccountKeyCharacteristicUUIDV2}
	assert.Contains(t, fake.Writes(), accountChar)
}
