package seekertest

import (
	"sync"

	fastpair "github.com/fastpair-go/seeker"
)

// FakeGattClient is an in-memory fastpair.GattClient. Tests drive protocol
// responses by calling Notify after the device under test writes to a
// characteristic.
type FakeGattClient struct {
	mu sync.Mutex

	ConnectResult bool
	DiscoverResult bool

	characteristics map[fastpair.UUID]fastpair.GattCharacteristic
	subscriptions   map[fastpair.GattCharacteristic]func([]byte)

	writes []fastpair.GattCharacteristic

	WriteResult bool
}

// NewFakeGattClient returns a fake that by default accepts every
// operation. Populate characteristics with AddCharacteristic before use.
func NewFakeGattClient() *FakeGattClient {
	return &FakeGattClient{
		ConnectResult:   true,
		DiscoverResult:  true,
		WriteResult:     true,
		characteristics: make(map[fastpair.UUID]fastpair.GattCharacteristic),
		subscriptions:   make(map[fastpair.GattCharacteristic]func([]byte)),
	}
}

// AddCharacteristic registers a characteristic so GetCharacteristic can
// resolve it.
func (f *FakeGattClient) AddCharacteristic(service, characteristic fastpair.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.characteristics[characteristic] = fastpair.GattCharacteristic{ServiceUUID: service, CharacteristicUUID: characteristic}
}

// Notify delivers value to whatever callback last subscribed to ch.
func (f *FakeGattClient) Notify(ch fastpair.GattCharacteristic, value []byte) {
	f.mu.Lock()
	cb := f.subscriptions[ch]
	f.mu.Unlock()
	if cb != nil {
		cb(value)
	}
}

// Writes returns every characteristic written to, in call order.
func (f *FakeGattClient) Writes() []fastpair.GattCharacteristic {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fastpair.GattCharacteristic(nil), f.writes...)
}

func (f *FakeGattClient) Connect(address string) bool {
	return f.ConnectResult
}

func (f *FakeGattClient) Disconnect() {}

func (f *FakeGattClient) DiscoverServiceAndCharacteristics(service fastpair.UUID, characteristics []fastpair.UUID) bool {
	return f.DiscoverResult
}

func (f *FakeGattClient) GetCharacteristic(service, characteristic fastpair.UUID) (fastpair.GattCharacteristic, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.characteristics[characteristic]
	return ch, ok
}

func (f *FakeGattClient) SetCharacteristicSubscription(ch fastpair.GattCharacteristic, subscribe bool, onValue func([]byte)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if subscribe {
		f.subscriptions[ch] = onValue
	} else {
		delete(f.subscriptions, ch)
	}
	return true
}

func (f *FakeGattClient) WriteCharacteristic(ch fastpair.GattCharacteristic, value []byte) bool {
	f.mu.Lock()
	f.writes = append(f.writes, ch)
	f.mu.Unlock()
	return f.WriteResult
}
