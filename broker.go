package fastpair

import (
	"github.com/dustin/go-broadcast"
)

// BrokerEvent is submitted to observers registered with PairerBroker.
// Exactly one concrete field is populated per event.
type BrokerEvent struct {
	ModelID string

	PairingComplete   bool
	PairFailure       *PairFailure
	AccountKeyWriteOK bool
	AccountKeyFailure *PairFailure
}

const brokerBroadcastBuffer = 16

// perModelState tracks the bookkeeping PairerBroker needs for one model id
// currently being paired: the device's current BLE address
// (to detect address-rotation races) and the handshake/pair retry
// budgets.
type perModelState struct {
	device *FastPairDevice
	pairer *Pairer

	handshakeAttempts int
	pairAttempts      int
}

// PairerBroker multiplexes concurrent per-device pairings keyed by model
// id, retrying handshake and pair failures up to the configured budgets
// before giving up and notifying observers.
type PairerBroker struct {
	cfg        Config
	executor   *Executor
	mediums    GattClient
	classic    ClassicPairing
	repository Repository
	handshakes *HandshakeLookup
	signedIn   bool

	broadcaster broadcast.Broadcaster

	byModel map[string]*perModelState
}

// NewPairerBroker constructs a broker. mediums is the GATT transport used
// to build each device's handshake client; classic performs platform
// pairing; repository resolves metadata and commits account associations.
func NewPairerBroker(cfg Config, mediums GattClient, classic ClassicPairing, repository Repository, signedIn bool) *PairerBroker {
	return &PairerBroker{
		cfg:         cfg,
		executor:    NewExecutor(cfg.ExecutorQueueDepth),
		mediums:     mediums,
		classic:     classic,
		repository:  repository,
		handshakes:  NewHandshakeLookup(),
		signedIn:    signedIn,
		broadcaster: broadcast.NewBroadcaster(brokerBroadcastBuffer),
		byModel:     make(map[string]*perModelState),
	}
}

// Observe registers a channel to receive BrokerEvent values. Unregister
// with StopObserving; doing so mid-dispatch is safe.
func (b *PairerBroker) Observe(ch chan any) {
	b.broadcaster.Register(ch)
}

// StopObserving deregisters a channel previously passed to Observe.
func (b *PairerBroker) StopObserving(ch chan any) {
	b.broadcaster.Unregister(ch)
}

func (b *PairerBroker) emit(ev BrokerEvent) {
	b.executor.Submit(func() {
		b.broadcaster.Submit(ev)
	})
}

// StartPairing queues device for pairing. If a pairing is already active
// for its model id, the new request is dropped.
func (b *PairerBroker) StartPairing(device *FastPairDevice) {
	b.executor.Submit(func() {
		b.startPairingOnExecutor(device)
	})
}

func (b *PairerBroker) startPairingOnExecutor(device *FastPairDevice) {
	if _, exists := b.byModel[device.ModelID()]; exists {
		log.WithField("model_id", device.ModelID()).Info("fastpair: pairing already active for model, dropping request")
		return
	}
	state := &perModelState{device: device}
	b.byModel[device.ModelID()] = state

	if device.Version() == DeviceVersionV1 {
		b.enterPairer(state, nil, nil)
		return
	}
	b.createHandshake(state)
}

func (b *PairerBroker) createHandshake(state *perModelState) {
	gatt := NewFastPairGattServiceClient(b.mediums, state.device.BleAddress(), b.cfg, b.executor)
	h := b.handshakes.GetOrCreate(state.device, func() *Handshake {
		// The local BLE address is a platform concern this package doesn't
		// have; the request's seeker-address field falls back to random
		// salt.
		return NewHandshake(state.device, gatt, nil)
	})

	h.Run(func(enc *DataEncryptor, failure *PairFailure) {
		b.executor.Submit(func() {
			b.onHandshakeResult(state, h, gatt, failure)
		})
	})
}

func (b *PairerBroker) onHandshakeResult(state *perModelState, h *Handshake, gatt *FastPairGattServiceClient, failure *PairFailure) {
	if failure == nil {
		b.enterPairer(state, h, gatt)
		return
	}
	state.handshakeAttempts++
	if state.handshakeAttempts < b.cfg.MaxHandshakeAttempts {
		StartTimer(b.executor, b.cfg.RetryDelay, func() {
			b.createHandshake(state)
		})
		return
	}
	b.emit(BrokerEvent{ModelID: state.device.ModelID(), PairFailure: failure})
	b.dropModel(state.device.ModelID())
}

func (b *PairerBroker) enterPairer(state *perModelState, h *Handshake, gatt *FastPairGattServiceClient) {
	pairer := NewPairer(state.device, h, gatt, b.classic, b.repository, b.signedIn, b.cfg, b.executor)
	state.pairer = pairer

	pairer.StartPairing(PairerCallbacks{
		OnPairingFailed: func(f PairFailure) {
			b.executor.Submit(func() {
				b.onPairFailure(state, f)
			})
		},
		OnAccountKeyWrite: func(key AccountKey, f *PairFailure) {
			b.executor.Submit(func() {
				b.onAccountKeyWrite(state, key, f)
			})
		},
		OnPairingCompleted: func() {
			b.executor.Submit(func() {
				b.onPairingCompleted(state)
			})
		},
	})
}

func (b *PairerBroker) onPairFailure(state *perModelState, f PairFailure) {
	state.pairAttempts++
	if state.pairAttempts < b.cfg.MaxPairFailureRetries {
		if state.pairer != nil {
			state.pairer.CancelPairing()
		}
		state.pairer = nil
		StartTimer(b.executor, b.cfg.RetryDelay, func() {
			b.startPairingOnExecutor(state.device)
		})
		return
	}
	b.emit(BrokerEvent{ModelID: state.device.ModelID(), PairFailure: &f})
	b.handshakes.Erase(state.device)
	b.dropModel(state.device.ModelID())
}

func (b *PairerBroker) onAccountKeyWrite(state *perModelState, key AccountKey, f *PairFailure) {
	if f != nil {
		b.emit(BrokerEvent{ModelID: state.device.ModelID(), AccountKeyFailure: f})
		b.handshakes.Erase(state.device)
		b.dropModel(state.device.ModelID())
		return
	}
	b.emit(BrokerEvent{ModelID: state.device.ModelID(), AccountKeyWriteOK: true})
}

// onPairingCompleted handles PairerCallbacks.OnPairingCompleted. The
// AccountKeyWrite(Ok) event that pairs with a completed procedure
// is emitted from within the pairer's own write/commit callback
// (onAccountKeyWrite), since that is the only place the outcome of that
// write is known; this handler only needs to emit PairingComplete.
func (b *PairerBroker) onPairingCompleted(state *perModelState) {
	b.emit(BrokerEvent{ModelID: state.device.ModelID(), PairingComplete: true})
	b.dropModel(state.device.ModelID())
}

func (b *PairerBroker) dropModel(modelID string) {
	delete(b.byModel, modelID)
}

// Shutdown stops the broker's executor and handshake cache maintenance.
func (b *PairerBroker) Shutdown() {
	b.handshakes.Stop()
	b.executor.Shutdown()
}
