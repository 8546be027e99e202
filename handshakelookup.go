package fastpair

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

const handshakeCacheTTL = 10 * time.Minute

// HandshakeLookup is the process-wide registry of live handshakes, keyed
// simultaneously by a device's surrogate id, BLE address, and public
// address. It is the single owner of Handshake instances;
// callers never construct one directly outside GetOrCreate.
type HandshakeLookup struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, *Handshake]
}

// NewHandshakeLookup constructs an empty registry.
func NewHandshakeLookup() *HandshakeLookup {
	c := ttlcache.New[string, *Handshake](ttlcache.WithTTL[string, *Handshake](handshakeCacheTTL))
	go c.Start()
	return &HandshakeLookup{cache: c}
}

func surrogateKey(id uuid.UUID) string  { return "surrogate:" + id.String() }
func bleAddressKey(addr string) string  { return "ble:" + addr }
func publicAddressKey(addr string) string { return "public:" + addr }

// GetOrCreate returns the existing handshake for device if one completed
// successfully; otherwise any stale entry is evicted and a fresh handshake
// built by newHandshake is registered under all three keys.
func (l *HandshakeLookup) GetOrCreate(device *FastPairDevice, newHandshake func() *Handshake) *Handshake {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item := l.cache.Get(surrogateKey(device.SurrogateID())); item != nil {
		existing := item.Value()
		if existing.CompletedSuccessfully() {
			return existing
		}
		l.eraseLocked(device)
	}

	h := newHandshake()
	l.cache.Set(surrogateKey(device.SurrogateID()), h, ttlcache.DefaultTTL)
	if addr := device.BleAddress(); addr != "" {
		l.cache.Set(bleAddressKey(addr), h, ttlcache.DefaultTTL)
	}
	if addr := device.PublicAddress(); addr != "" {
		l.cache.Set(publicAddressKey(addr), h, ttlcache.DefaultTTL)
	}
	return h
}

// Get returns the handshake registered for any of a device's three keys.
func (l *HandshakeLookup) Get(device *FastPairDevice) (*Handshake, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if item := l.cache.Get(surrogateKey(device.SurrogateID())); item != nil {
		return item.Value(), true
	}
	if addr := device.BleAddress(); addr != "" {
		if item := l.cache.Get(bleAddressKey(addr)); item != nil {
			return item.Value(), true
		}
	}
	if addr := device.PublicAddress(); addr != "" {
		if item := l.cache.Get(publicAddressKey(addr)); item != nil {
			return item.Value(), true
		}
	}
	return nil, false
}

// Erase removes the entry associated with device under all three of its
// keys.
func (l *HandshakeLookup) Erase(device *FastPairDevice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eraseLocked(device)
}

func (l *HandshakeLookup) eraseLocked(device *FastPairDevice) {
	l.cache.Delete(surrogateKey(device.SurrogateID()))
	if addr := device.BleAddress(); addr != "" {
		l.cache.Delete(bleAddressKey(addr))
	}
	if addr := device.PublicAddress(); addr != "" {
		l.cache.Delete(publicAddressKey(addr))
	}
}

// Stop shuts down the cache's background eviction goroutine.
func (l *HandshakeLookup) Stop() {
	l.cache.Stop()
}
