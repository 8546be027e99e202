package fastpair

// PasskeyConfirmCallback is called by the seeker with its decision on a
// passkey comparison: true to accept the platform pairing, false to reject
// it.
type PasskeyConfirmCallback func(accept bool)

// ClassicPairingCallback streams events from an in-flight classic pairing
// attempt. Exactly one terminal event (Paired or Failed) is ever delivered
// unless the pairing is cancelled first.
type ClassicPairingCallback struct {
	// OnPasskeyConfirmationRequested is invoked when the platform needs the
	// seeker to confirm a passkey; confirm must be called exactly once.
	OnPasskeyConfirmationRequested func(passkey uint32, confirm PasskeyConfirmCallback)
	// OnPaired is invoked once pairing completes, with the display name
	// the platform learned (if any).
	OnPaired func(displayName string)
	// OnFailed is invoked once pairing fails for a reason outside this
	// package's own protocol logic (e.g. the platform API returned an
	// error, or the device disconnected).
	OnFailed func(failure PairFailure)
}

// ClassicPairing is the external collaborator that performs classic
// Bluetooth pairing against a public address. A platform
// adapter outside this package implements it.
type ClassicPairing interface {
	// IsPaired reports whether publicAddress is already bonded.
	IsPaired(publicAddress string) bool
	// Unpair removes any existing classic bond with publicAddress.
	Unpair(publicAddress string) error
	// InitiatePairing begins classic pairing with publicAddress, streaming
	// events through cb until a terminal event or CancelPairing.
	InitiatePairing(publicAddress string, cb ClassicPairingCallback) error
	// CancelPairing interrupts any in-flight pairing with publicAddress.
	CancelPairing(publicAddress string)
	// FinishPairing completes bonding after a successful passkey
	// confirmation.
	FinishPairing(publicAddress string) error
}
