package seekertest

import (
	"sync"

	fastpair "github.com/fastpair-go/seeker"
)

// FakeClassicPairing is an in-memory fastpair.ClassicPairing. Tests drive
// the platform pairing flow by calling RequestPasskeyConfirmation or
// CompletePairing after InitiatePairing is observed.
type FakeClassicPairing struct {
	mu sync.Mutex

	UnpairErr        error
	InitiatePairErr  error
	DisplayName      string

	cancelled map[string]bool
	callbacks map[string]fastpair.ClassicPairingCallback
}

// NewFakeClassicPairing returns a fake that accepts every operation.
func NewFakeClassicPairing() *FakeClassicPairing {
	return &FakeClassicPairing{
		cancelled: make(map[string]bool),
		callbacks: make(map[string]fastpair.ClassicPairingCallback),
	}
}

func (f *FakeClassicPairing) IsPaired(publicAddress string) bool {
	return false
}

func (f *FakeClassicPairing) Unpair(publicAddress string) error {
	return f.UnpairErr
}

func (f *FakeClassicPairing) InitiatePairing(publicAddress string, cb fastpair.ClassicPairingCallback) error {
	if f.InitiatePairErr != nil {
		return f.InitiatePairErr
	}
	f.mu.Lock()
	f.callbacks[publicAddress] = cb
	f.mu.Unlock()
	return nil
}

func (f *FakeClassicPairing) CancelPairing(publicAddress string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled[publicAddress] = true
}

func (f *FakeClassicPairing) FinishPairing(publicAddress string) error {
	return nil
}

// RequestPasskeyConfirmation simulates the platform asking the seeker to
// confirm passkey for publicAddress.
func (f *FakeClassicPairing) RequestPasskeyConfirmation(publicAddress string, passkey uint32, confirm fastpair.PasskeyConfirmCallback) {
	f.mu.Lock()
	cb := f.callbacks[publicAddress]
	f.mu.Unlock()
	if cb.OnPasskeyConfirmationRequested != nil {
		cb.OnPasskeyConfirmationRequested(passkey, confirm)
	}
}

// CompletePairing simulates the platform reporting a successful pairing.
func (f *FakeClassicPairing) CompletePairing(publicAddress string) {
	f.mu.Lock()
	cb := f.callbacks[publicAddress]
	f.mu.Unlock()
	if cb.OnPaired != nil {
		cb.OnPaired(f.DisplayName)
	}
}

// FailPairing simulates the platform reporting a pairing failure.
func (f *FakeClassicPairing) FailPairing(publicAddress string, failure fastpair.PairFailure) {
	f.mu.Lock()
	cb := f.callbacks[publicAddress]
	f.mu.Unlock()
	if cb.OnFailed != nil {
		cb.OnFailed(failure)
	}
}

// WasCancelled reports whether CancelPairing was called for publicAddress.
func (f *FakeClassicPairing) WasCancelled(publicAddress string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled[publicAddress]
}
