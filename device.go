package fastpair

import (
	"sync"

	"github.com/google/uuid"
)

// Protocol distinguishes the three pairing flows a device can go through.
type Protocol int

const (
	ProtocolInitialPairing Protocol = iota
	ProtocolSubsequentPairing
	ProtocolRetroactivePairing
)

func (p Protocol) String() string {
	switch p {
	case ProtocolInitialPairing:
		return "InitialPairing"
	case ProtocolSubsequentPairing:
		return "SubsequentPairing"
	case ProtocolRetroactivePairing:
		return "RetroactivePairing"
	default:
		return "Unknown"
	}
}

// DeviceVersion distinguishes legacy v1 devices, which are paired without
// any handshake or encryption, from v2 and later, which run a full ECDH
// handshake.
type DeviceVersion int

const (
	DeviceVersionV1 DeviceVersion = iota
	DeviceVersionV2Plus
)

// FastPairDevice is the seeker-side record for one discovered or paired
// accessory. A device is looked up and mutated only by the
// pairing pipeline; callers elsewhere should treat it as read-only via the
// accessor methods.
//
// Identity is tracked three ways simultaneously, mirroring the handshake
// cache's lookup keys: a process-local surrogate UUID (assigned once, used
// as the primary cache key so that a device surviving an address rotation
// is not treated as a new one), the BLE address surfaced by the current
// scan, and the classic public address learned during handshake.
type FastPairDevice struct {
	mu sync.RWMutex

	surrogateID uuid.UUID
	modelID     string
	bleAddress  string

	publicAddress string
	displayName   string

	protocol Protocol
	version  DeviceVersion

	accountKey    AccountKey
	hasAccountKey bool

	metadata *DeviceMetadata
}

// NewFastPairDevice constructs a device record for a freshly discovered
// advertisement. Version defaults to DeviceVersionV1 until metadata is
// attached via SetMetadata.
func NewFastPairDevice(modelID, bleAddress string, protocol Protocol) *FastPairDevice {
	return &FastPairDevice{
		surrogateID: uuid.New(),
		modelID:     modelID,
		bleAddress:  bleAddress,
		protocol:    protocol,
		version:     DeviceVersionV1,
	}
}

// SurrogateID returns the process-local identity used as the handshake
// cache's primary key.
func (d *FastPairDevice) SurrogateID() uuid.UUID {
	return d.surrogateID
}

// ModelID returns the 3-byte hex model id advertised by the device.
func (d *FastPairDevice) ModelID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modelID
}

// BleAddress returns the scan-surfaced BLE address. It may change across
// advertisements if the device rotates its address.
func (d *FastPairDevice) BleAddress() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bleAddress
}

// SetBleAddress records a new scan-surfaced address after a rotation.
func (d *FastPairDevice) SetBleAddress(addr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bleAddress = addr
}

// PublicAddress returns the classic BT public address, if known. It is
// empty until SetPublicAddress is called; the Pairer falls back to the BLE
// address when it is empty.
func (d *FastPairDevice) PublicAddress() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.publicAddress
}

// SetPublicAddress records the classic BT public address learned during
// handshake.
func (d *FastPairDevice) SetPublicAddress(addr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.publicAddress = addr
}

// DisplayName returns the user-facing name, if one has been set (either
// from metadata or a classic-pairing name read).
func (d *FastPairDevice) DisplayName() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.displayName
}

// SetDisplayName overrides the display name, e.g. with a name surfaced by
// classic pairing.
func (d *FastPairDevice) SetDisplayName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.displayName = name
}

// Protocol reports which of the three pairing flows this device is
// running.
func (d *FastPairDevice) Protocol() Protocol {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.protocol
}

// Version reports the device's protocol generation.
func (d *FastPairDevice) Version() DeviceVersion {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// AccountKey returns the device's account key and whether one has been
// set.
func (d *FastPairDevice) AccountKey() (AccountKey, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.accountKey, d.hasAccountKey
}

// SetAccountKey attaches an account key, e.g. one retrieved from a prior
// association or minted during initial pairing.
func (d *FastPairDevice) SetAccountKey(k AccountKey) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accountKey = k
	d.hasAccountKey = true
}

// Metadata returns the device's fetched metadata, or nil if none has been
// attached yet.
func (d *FastPairDevice) Metadata() *DeviceMetadata {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metadata
}

// SetMetadata attaches repository-fetched metadata and derives the
// device's version from it.
func (d *FastPairDevice) SetMetadata(m *DeviceMetadata) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.metadata = m
	if m != nil {
		d.version = m.Version()
	}
}
