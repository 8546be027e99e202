package fastpair

// HandshakeCompleteCallback reports the outcome of running a Handshake: on
// success, the device's public address has already been set.
type HandshakeCompleteCallback func(*DataEncryptor, *PairFailure)

// Handshake sequences GATT initialization, encryptor construction, and the
// single key-based write that establishes a session key with a provider.
// It is owned exclusively by the handshake cache once created.
type Handshake struct {
	device        *FastPairDevice
	gatt          *FastPairGattServiceClient
	seekerAddress *[6]byte // nil when the local address is not known

	encryptor *DataEncryptor

	completedSuccessfully bool
}

// NewHandshake constructs a handshake for device, driving gatt. Completion
// is not attempted until Run is called. seekerAddress may be nil.
func NewHandshake(device *FastPairDevice, gatt *FastPairGattServiceClient, seekerAddress *[6]byte) *Handshake {
	return &Handshake{device: device, gatt: gatt, seekerAddress: seekerAddress}
}

// CompletedSuccessfully reports whether this handshake reached a usable
// encryptor and set the device's public address.
func (h *Handshake) CompletedSuccessfully() bool {
	return h.completedSuccessfully
}

// Encryptor returns the session encryptor established by a successful run,
// or nil if the handshake has not completed.
func (h *Handshake) Encryptor() *DataEncryptor {
	return h.encryptor
}

// Run drives GATT initialization, builds the encryptor from the device's
// metadata (v2+, via ECDH) or account key (subsequent pairing), performs
// the key-based write, and on a valid response sets the device's public
// address before invoking cb.
func (h *Handshake) Run(cb HandshakeCompleteCallback) {
	h.gatt.InitializeGattConnection(func(failure *PairFailure) {
		if failure != nil {
			cb(nil, failure)
			return
		}
		h.buildEncryptorAndWrite(cb)
	})
}

func (h *Handshake) buildEncryptorAndWrite(cb HandshakeCompleteCallback) {
	enc, err := h.buildEncryptor()
	if err != nil {
		f := PairFailureDataEncryptorRetrieval
		cb(nil, &f)
		return
	}

	var providerAddr [6]byte
	parsed, err := parseBluetoothAddress(h.device.BleAddress())
	if err == nil {
		providerAddr = parsed
	}

	h.gatt.WriteRequestAsync(byte(MessageTypeKeyBasedPairingRequest), 0x00, providerAddr, h.seekerAddress, enc, func(response []byte, failure *PairFailure) {
		if failure != nil {
			cb(nil, failure)
			return
		}
		var block [aesBlockByteSize]byte
		if len(response) != aesBlockByteSize {
			f := PairFailureKeyBasedPairingResponseDecrypt
			cb(nil, &f)
			return
		}
		copy(block[:], response)
		plaintext, err := enc.Decrypt(block)
		if err != nil {
			f := PairFailureKeyBasedPairingResponseDecrypt
			cb(nil, &f)
			return
		}
		parsedResp, err := ParseDecryptedResponse(plaintext)
		if err != nil {
			f := PairFailureIncorrectKeyBasedPairingResponseType
			cb(nil, &f)
			return
		}

		h.device.SetPublicAddress(formatBluetoothAddress(parsedResp.ProviderAddress))
		h.encryptor = &enc
		h.completedSuccessfully = true
		cb(&enc, nil)
	})
}

func (h *Handshake) buildEncryptor() (DataEncryptor, error) {
	if md := h.device.Metadata(); md != nil && len(md.AntiSpoofingPublicKey) > 0 {
		return NewDataEncryptorFromECDH(md.AntiSpoofingPublicKey)
	}
	if key, ok := h.device.AccountKey(); ok {
		return NewDataEncryptorFromAccountKey(key), nil
	}
	return DataEncryptor{}, errHandshakeNoKeyMaterial
}

var errHandshakeNoKeyMaterial = errHandshakeNoKeyMaterialError{}

type errHandshakeNoKeyMaterialError struct{}

func (errHandshakeNoKeyMaterialError) Error() string {
	return "fastpair: no anti-spoofing key or account key available to build an encryptor"
}
