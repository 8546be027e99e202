package fastpair

// PairerCallbacks delivers the outcome of a Pairer run to its owner (the
// broker).
type PairerCallbacks struct {
	OnPaired           func()
	OnPairingFailed    func(PairFailure)
	OnAccountKeyWrite  func(key AccountKey, failure *PairFailure)
	OnPairingCompleted func()
}

// Pairer drives one device through classic pairing and the post-pair
// account-key actions a full pairing requires. A Pairer is single-use: once
// it reports completion or failure it is discarded by its broker.
type Pairer struct {
	device        *FastPairDevice
	handshake     *Handshake // nil for v1 devices
	handshakeGatt *FastPairGattServiceClient
	classic       ClassicPairing
	repository    Repository
	signedIn      bool
	cfg           Config
	executor      *Executor
	cb            PairerCallbacks

	pairingTimer *Timer
	cancelled    bool
}

// NewPairer constructs a Pairer. handshake and gatt are nil for a legacy
// v1 device, whose BLE address already equals its public address and
// which never runs the passkey or account-key GATT exchange.
func NewPairer(device *FastPairDevice, handshake *Handshake, gatt *FastPairGattServiceClient, classic ClassicPairing, repository Repository, signedIn bool, cfg Config, executor *Executor) *Pairer {
	return &Pairer{device: device, handshake: handshake, handshakeGatt: gatt, classic: classic, repository: repository, signedIn: signedIn, cfg: cfg, executor: executor}
}

// StartPairing begins the 20-second initiate-pairing deadline and kicks
// off classic pairing.
func (p *Pairer) StartPairing(cb PairerCallbacks) {
	p.cb = cb
	p.pairingTimer = StartTimer(p.executor, p.cfg.InitiatePairingTimeout, func() {
		p.notifyFailed(PairFailurePairingTimeout)
	})
	p.initiatePairing()
}

func (p *Pairer) publicAddress() string {
	if addr := p.device.PublicAddress(); addr != "" {
		return addr
	}
	return p.device.BleAddress()
}

func (p *Pairer) initiatePairing() {
	if p.cancelled {
		return
	}
	if err := p.classic.Unpair(p.publicAddress()); err != nil {
		p.notifyFailed(PairFailurePairingAndConnect)
		return
	}

	err := p.classic.InitiatePairing(p.publicAddress(), ClassicPairingCallback{
		OnPasskeyConfirmationRequested: p.onPasskeyConfirmationRequested,
		OnPaired:                      p.onPlatformPaired,
		OnFailed:                      p.notifyFailed,
	})
	if err != nil {
		p.notifyFailed(PairFailurePairingAndConnect)
	}
}

func (p *Pairer) onPasskeyConfirmationRequested(passkey uint32, confirm PasskeyConfirmCallback) {
	if p.cancelled {
		return
	}
	if p.handshake == nil || p.handshake.Encryptor() == nil {
		p.notifyFailed(PairFailureDeviceLostMidPairing)
		return
	}
	enc := *p.handshake.Encryptor()
	gatt, ok := p.gattClient()
	if !ok {
		p.notifyFailed(PairFailureDeviceLostMidPairing)
		return
	}

	gatt.WritePasskeyAsync(passkey, enc, func(response []byte, failure *PairFailure) {
		if failure != nil {
			p.notifyFailed(*failure)
			return
		}
		var block [aesBlockByteSize]byte
		if len(response) != aesBlockByteSize {
			p.notifyFailed(PairFailurePasskeyDecrypt)
			return
		}
		copy(block[:], response)
		plaintext, err := enc.Decrypt(block)
		if err != nil {
			p.notifyFailed(PairFailurePasskeyDecrypt)
			return
		}
		parsed, err := ParseDecryptedPasskey(plaintext)
		if err != nil || parsed.MessageType != MessageTypeProvidersPasskey {
			p.notifyFailed(PairFailureIncorrectPasskeyResponseType)
			return
		}
		if parsed.Code != passkey {
			confirm(false)
			p.notifyFailed(PairFailurePasskeyMismatch)
			return
		}
		confirm(true)
	})
}

// gattClient returns the already-initialized GATT client the handshake
// used, for driving the passkey and account-key writes. v1 devices have
// none.
func (p *Pairer) gattClient() (*FastPairGattServiceClient, bool) {
	if p.handshakeGatt == nil {
		return nil, false
	}
	return p.handshakeGatt, true
}

func (p *Pairer) onPlatformPaired(displayName string) {
	if p.cancelled {
		return
	}
	if p.pairingTimer != nil {
		p.pairingTimer.Stop()
	}
	if displayName != "" {
		p.device.SetDisplayName(displayName)
	}
	if p.cb.OnPaired != nil {
		p.cb.OnPaired()
	}
	p.runPostPairActions()
}

func (p *Pairer) runPostPairActions() {
	if p.handshake == nil {
		// v1, no account key flow
		p.notifyCompleted()
		return
	}
	switch p.device.Protocol() {
	case ProtocolSubsequentPairing:
		// Account key is already known; nothing to write to the device or
		// cloud, just persist it locally (the caller already holds it via
		// device.AccountKey()).
		p.notifyCompleted()
	case ProtocolRetroactivePairing:
		p.writeAccountKeyToDeviceOnly()
	case ProtocolInitialPairing:
		if !p.signedIn {
			p.notifyCompleted()
			return
		}
		p.checkSavedThenWrite()
	default: // unknown protocol, no account key flow
		p.notifyCompleted()
	}
}

func (p *Pairer) checkSavedThenWrite() {
	saved, err := p.repository.IsDeviceSavedToAccount(p.publicAddress())
	if err == nil && saved {
		p.notifyCompleted()
		return
	}
	p.writeAccountKeyThenCommit()
}

func (p *Pairer) writeAccountKeyThenCommit() {
	gatt, ok := p.gattClient()
	if !ok || p.handshake == nil || p.handshake.Encryptor() == nil {
		p.notifyAccountKeyFailure(PairFailureAccountKeyCharacteristicWrite)
		return
	}
	key, err := NewAccountKey()
	if err != nil {
		p.notifyAccountKeyFailure(PairFailureAccountKeyCharacteristicWrite)
		return
	}
	gatt.WriteAccountKey(key, *p.handshake.Encryptor(), func(written AccountKey, failure *PairFailure) {
		if failure != nil {
			p.notifyAccountKeyFailure(*failure)
			return
		}
		p.device.SetAccountKey(written)
		if err := p.repository.WriteAccountAssociation(p.device); err != nil {
			f := PairFailureWriteAccountKeyToFootprints
			p.notifyAccountKeyResult(written, &f)
			p.notifyCompleted()
			return
		}
		p.notifyAccountKeyResult(written, nil)
		p.notifyCompleted()
	})
}

func (p *Pairer) writeAccountKeyToDeviceOnly() {
	gatt, ok := p.gattClient()
	if !ok || p.handshake == nil || p.handshake.Encryptor() == nil {
		p.notifyAccountKeyFailure(PairFailureAccountKeyCharacteristicWrite)
		return
	}
	key, ok2 := p.device.AccountKey()
	if !ok2 {
		var err error
		key, err = NewAccountKey()
		if err != nil {
			p.notifyAccountKeyFailure(PairFailureAccountKeyCharacteristicWrite)
			return
		}
	}
	gatt.WriteAccountKey(key, *p.handshake.Encryptor(), func(written AccountKey, failure *PairFailure) {
		if failure != nil {
			p.notifyAccountKeyFailure(*failure)
			return
		}
		p.device.SetAccountKey(written)
		p.notifyAccountKeyResult(written, nil)
		p.notifyCompleted()
	})
}

// CancelPairing interrupts any in-flight platform pairing. The next GATT
// write issued after cancellation fails cleanly because the pairer stops
// acting on any further callbacks.
func (p *Pairer) CancelPairing() {
	p.cancelled = true
	p.classic.CancelPairing(p.publicAddress())
	if p.pairingTimer != nil {
		p.pairingTimer.Stop()
	}
}

func (p *Pairer) notifyFailed(f PairFailure) {
	if p.cancelled {
		return
	}
	if p.pairingTimer != nil {
		p.pairingTimer.Stop()
	}
	if p.cb.OnPairingFailed != nil {
		p.cb.OnPairingFailed(f)
	}
}

func (p *Pairer) notifyAccountKeyFailure(f PairFailure) {
	p.notifyAccountKeyResult(AccountKey{}, &f)
}

func (p *Pairer) notifyAccountKeyResult(key AccountKey, f *PairFailure) {
	if p.cb.OnAccountKeyWrite != nil {
		p.cb.OnAccountKeyWrite(key, f)
	}
}

func (p *Pairer) notifyCompleted() {
	if p.cb.OnPairingCompleted != nil {
		p.cb.OnPairingCompleted()
	}
}
