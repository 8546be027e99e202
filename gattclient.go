package fastpair

import (
	"crypto/rand"
	"encoding/binary"
)

// GattCharacteristic identifies one discovered characteristic on the Fast
// Pair GATT service.
type GattCharacteristic struct {
	ServiceUUID        UUID
	CharacteristicUUID UUID
}

// GattClient is the external collaborator that performs the actual BLE
// GATT operations. A platform adapter outside this package
// implements it; this package only drives the state machine.
type GattClient interface {
	// Connect establishes a GATT connection to address. It returns false
	// if the device could not be reached; the caller then retries, up to
	// Config.MaxGattConnectionAttempts attempts in all.
	Connect(address string) bool
	// Disconnect tears down the current connection, if any.
	Disconnect()
	// DiscoverServiceAndCharacteristics attempts discovery of service with
	// the given characteristic UUIDs, returning whether all were found.
	DiscoverServiceAndCharacteristics(service UUID, characteristics []UUID) bool
	// GetCharacteristic returns the characteristic matching service and
	// characteristic UUID, if discovery found it.
	GetCharacteristic(service, characteristic UUID) (GattCharacteristic, bool)
	// SetCharacteristicSubscription subscribes or unsubscribes to
	// notifications on ch, invoking onValue for each notified payload.
	SetCharacteristicSubscription(ch GattCharacteristic, subscribe bool, onValue func([]byte)) bool
	// WriteCharacteristic performs a write-with-response of value to ch.
	WriteCharacteristic(ch GattCharacteristic, value []byte) bool
}

// GattResponseCallback delivers the outcome of a key-based or passkey
// write: either the raw notified response bytes, or a failure.
type GattResponseCallback func(response []byte, failure *PairFailure)

// GattAccountKeyCallback delivers the outcome of an account-key write.
type GattAccountKeyCallback func(key AccountKey, failure *PairFailure)

// GattInitializedCallback reports the outcome of InitializeGattConnection.
type GattInitializedCallback func(failure *PairFailure)

// FastPairGattServiceClient drives the Fast Pair GATT handshake state
// machine against a GattClient: connect, discover the
// service and its three characteristics (preferring the v2 128-bit UUIDs
// and falling back to the legacy v1 16-bit forms), then serve key-based,
// passkey, and account-key write operations.
type FastPairGattServiceClient struct {
	client   GattClient
	address  string
	cfg      Config
	executor *Executor

	connectionAttempts int
	initialized        bool

	keyBasedChar GattCharacteristic
	passkeyChar  GattCharacteristic
	accountChar  GattCharacteristic

	keyBasedSubscribed bool
	passkeySubscribed  bool

	onInitialized GattInitializedCallback
	onKeyBased    GattResponseCallback
	onPasskey     GattResponseCallback
	onAccountKey  GattAccountKeyCallback

	discoveryTimer  *Timer
	keyBasedTimer   *Timer
	passkeyTimer    *Timer
	accountKeyTimer *Timer
}

// NewFastPairGattServiceClient constructs a client bound to a single
// device address, running its timers on executor.
func NewFastPairGattServiceClient(client GattClient, address string, cfg Config, executor *Executor) *FastPairGattServiceClient {
	return &FastPairGattServiceClient{client: client, address: address, cfg: cfg, executor: executor}
}

// InitializeGattConnection runs the connect/discover/resolve state machine
// and invokes cb exactly once with the outcome.
func (c *FastPairGattServiceClient) InitializeGattConnection(cb GattInitializedCallback) {
	c.onInitialized = cb
	c.attemptGattConnection()
}

func (c *FastPairGattServiceClient) attemptGattConnection() {
	if c.connectionAttempts >= c.cfg.MaxGattConnectionAttempts {
		c.notifyInitializedError(PairFailureCreateGattConnection)
		return
	}
	c.connectionAttempts++

	c.client.Disconnect()
	c.createGattConnection()
}

func (c *FastPairGattServiceClient) createGattConnection() {
	if !c.client.Connect(c.address) {
		c.attemptGattConnection()
		return
	}
	c.discoverServiceAndCharacteristics()
}

func (c *FastPairGattServiceClient) discoverServiceAndCharacteristics() {
	c.discoveryTimer = StartTimer(c.executor, c.cfg.GattOperationTimeout, c.onDiscoveryTimeout)

	ok := c.client.DiscoverServiceAndCharacteristics(FastPairServiceUUID, []UUID{KeyBasedCharacteristicUUIDV2, PasskeyCharacteristicUUIDV2}) ||
		c.client.DiscoverServiceAndCharacteristics(FastPairServiceUUID, []UUID{KeyBasedCharacteristicUUIDV1, PasskeyCharacteristicUUIDV1})

	if !ok {
		log.WithField("address", c.address).Info("fastpair: GATT service discovery failed, retrying")
		c.attemptGattConnection()
		return
	}

	c.discoveryTimer.Stop()
	c.getFastPairGattCharacteristics()
}

func (c *FastPairGattServiceClient) onDiscoveryTimeout() {
	c.attemptGattConnection()
}

func (c *FastPairGattServiceClient) getFastPairGattCharacteristics() {
	keyBased, ok := c.getCharacteristicByUUIDs(KeyBasedCharacteristicUUIDV1, KeyBasedCharacteristicUUIDV2)
	if !ok {
		c.notifyInitializedError(PairFailureKeyBasedPairingCharacteristicDiscovery)
		return
	}
	c.keyBasedChar = keyBased

	passkey, ok := c.getCharacteristicByUUIDs(PasskeyCharacteristicUUIDV1, PasskeyCharacteristicUUIDV2)
	if !ok {
		c.notifyInitializedError(PairFailurePasskeyCharacteristicDiscovery)
		return
	}
	c.passkeyChar = passkey

	account, ok := c.getCharacteristicByUUIDs(AccountKeyCharacteristicUUIDV1, AccountKeyCharacteristicUUIDV2)
	if !ok {
		c.notifyInitializedError(PairFailureAccountKeyCharacteristicDiscovery)
		return
	}
	c.accountChar = account

	c.initialized = true
	c.onInitialized(nil)
}

// getCharacteristicByUUIDs prefers the v2 128-bit form, falling back to
// the legacy v1 16-bit form.
func (c *FastPairGattServiceClient) getCharacteristicByUUIDs(v1, v2 UUID) (GattCharacteristic, bool) {
	if ch, ok := c.client.GetCharacteristic(FastPairServiceUUID, v2); ok {
		return ch, true
	}
	return c.client.GetCharacteristic(FastPairServiceUUID, v1)
}

func (c *FastPairGattServiceClient) notifyInitializedError(f PairFailure) {
	cb := c.onInitialized
	c.onInitialized = nil
	if cb != nil {
		cb(&f)
	}
}

// WriteRequestAsync writes a key-based pairing request. The
// key-based characteristic is single-use per session. seekerAddress may be
// nil, in which case bytes 8..14 of the plaintext are left as random
// salt.
func (c *FastPairGattServiceClient) WriteRequestAsync(messageType, flags byte, providerAddress [6]byte, seekerAddress *[6]byte, enc DataEncryptor, cb GattResponseCallback) {
	c.onKeyBased = cb

	plaintext := createKeyBasedRequest(messageType, flags, providerAddress, seekerAddress)
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		c.notifyKeyBasedError(PairFailureKeyBasedPairingCharacteristicWrite)
		return
	}
	payload := ciphertext[:]
	if pub, ok := enc.PublicKey(); ok {
		payload = append(append([]byte(nil), payload...), pub[:]...)
	}

	if !c.subscribeKeyBased() {
		return
	}
	c.writeKeyBased(payload)
}

func createKeyBasedRequest(messageType, flags byte, providerAddress [6]byte, seekerAddress *[6]byte) [aesBlockByteSize]byte {
	var block [aesBlockByteSize]byte
	_, _ = rand.Read(block[:])
	block[0] = messageType
	block[1] = flags
	copy(block[providerAddrStart:providerAddrStart+providerAddrLen], providerAddress[:])
	if seekerAddress != nil {
		copy(block[seekerAddrStart:seekerAddrStart+seekerAddrLen], seekerAddress[:])
	}
	return block
}

func (c *FastPairGattServiceClient) subscribeKeyBased() bool {
	c.keyBasedTimer = StartTimer(c.executor, c.cfg.GattOperationTimeout, func() {
		c.notifyKeyBasedError(PairFailureKeyBasedPairingCharacteristicSubscriptionTimeout)
	})

	if c.client.SetCharacteristicSubscription(c.keyBasedChar, true, c.onKeyBasedNotified) {
		c.keyBasedTimer.Stop()
		c.keyBasedSubscribed = true
		return true
	}
	c.notifyKeyBasedError(PairFailureKeyBasedPairingCharacteristicSubscription)
	return false
}

func (c *FastPairGattServiceClient) writeKeyBased(payload []byte) {
	c.keyBasedTimer = StartTimer(c.executor, c.cfg.GattOperationTimeout, func() {
		c.notifyKeyBasedError(PairFailureKeyBasedPairingResponseTimeout)
	})

	if !c.client.WriteCharacteristic(c.keyBasedChar, payload) {
		c.keyBasedTimer.Stop()
		c.notifyKeyBasedError(PairFailureKeyBasedPairingCharacteristicWrite)
	}
}

func (c *FastPairGattServiceClient) onKeyBasedNotified(value []byte) {
	if c.keyBasedTimer != nil {
		c.keyBasedTimer.Stop()
	}
	cb := c.onKeyBased
	c.onKeyBased = nil
	if cb != nil {
		cb(value, nil)
	}
}

func (c *FastPairGattServiceClient) notifyKeyBasedError(f PairFailure) {
	cb := c.onKeyBased
	c.onKeyBased = nil
	if cb != nil {
		cb(nil, &f)
	}
}

// WritePasskeyAsync writes the seeker's passkey confirmation. It may only
// be used once, after the key-based write has resolved.
func (c *FastPairGattServiceClient) WritePasskeyAsync(passkeyCode uint32, enc DataEncryptor, cb GattResponseCallback) {
	c.onPasskey = cb

	var block [aesBlockByteSize]byte
	_, _ = rand.Read(block[:])
	block[0] = byte(MessageTypeSeekersPasskey)
	var be [4]byte
	binary.BigEndian.PutUint32(be[:], passkeyCode)
	copy(block[1:4], be[1:4])

	ciphertext, err := enc.Encrypt(block)
	if err != nil {
		c.notifyPasskeyError(PairFailurePasskeyCharacteristicWrite)
		return
	}

	if !c.subscribePasskey() {
		return
	}
	c.writePasskey(ciphertext[:])
}

func (c *FastPairGattServiceClient) subscribePasskey() bool {
	c.passkeyTimer = StartTimer(c.executor, c.cfg.GattOperationTimeout, func() {
		c.notifyPasskeyError(PairFailurePasskeyCharacteristicSubscriptionTimeout)
	})

	if c.client.SetCharacteristicSubscription(c.passkeyChar, true, c.onPasskeyNotified) {
		c.passkeyTimer.Stop()
		c.passkeySubscribed = true
		return true
	}
	c.notifyPasskeyError(PairFailurePasskeyCharacteristicSubscription)
	return false
}

func (c *FastPairGattServiceClient) writePasskey(payload []byte) {
	c.passkeyTimer = StartTimer(c.executor, c.cfg.GattOperationTimeout, func() {
		c.notifyPasskeyError(PairFailurePasskeyResponseTimeout)
	})

	if !c.client.WriteCharacteristic(c.passkeyChar, payload) {
		c.passkeyTimer.Stop()
		c.notifyPasskeyError(PairFailurePasskeyCharacteristicWrite)
	}
}

func (c *FastPairGattServiceClient) onPasskeyNotified(value []byte) {
	if c.passkeyTimer != nil {
		c.passkeyTimer.Stop()
	}
	cb := c.onPasskey
	c.onPasskey = nil
	if cb != nil {
		cb(value, nil)
	}
}

func (c *FastPairGattServiceClient) notifyPasskeyError(f PairFailure) {
	cb := c.onPasskey
	c.onPasskey = nil
	if cb != nil {
		cb(nil, &f)
	}
}

// WriteAccountKey encrypts and writes a freshly minted account key to the
// account-key characteristic, forcing its leading byte to the account-key
// message type before transmission. On success the callback receives that
// same transmitted 16 bytes, not the caller's pre-mutation key, so the
// Seeker persists exactly what the Provider stored.
func (c *FastPairGattServiceClient) WriteAccountKey(key AccountKey, enc DataEncryptor, cb GattAccountKeyCallback) {
	c.onAccountKey = cb

	var block [aesBlockByteSize]byte
	copy(block[:], key[:])
	block[0] = 0x04

	ciphertext, err := enc.Encrypt(block)
	if err != nil {
		c.notifyAccountKeyError(PairFailureAccountKeyCharacteristicWrite)
		return
	}

	c.accountKeyTimer = StartTimer(c.executor, c.cfg.GattOperationTimeout, func() {
		c.notifyAccountKeyError(PairFailureAccountKeyCharacteristicWrite)
	})

	if c.client.WriteCharacteristic(c.accountChar, ciphertext[:]) {
		c.accountKeyTimer.Stop()
		cb := c.onAccountKey
		c.onAccountKey = nil
		if cb != nil {
			cb(AccountKey(block), nil)
		}
		return
	}
	c.accountKeyTimer.Stop()
	c.notifyAccountKeyError(PairFailureAccountKeyCharacteristicWrite)
}

func (c *FastPairGattServiceClient) notifyAccountKeyError(f PairFailure) {
	cb := c.onAccountKey
	c.onAccountKey = nil
	if cb != nil {
		cb(AccountKey{}, &f)
	}
}
