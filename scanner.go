package fastpair

import "strings"

// ScanEvent reports a discoverable-frame sighting or loss.
type ScanEvent struct {
	Device *FastPairDevice
	Lost   bool
}

// Advertisement is the minimal shape a platform BLE scan adapter reports
// for each sighting: the service-data payload under the Fast Pair service
// UUID, and the address the sighting came from.
type Advertisement struct {
	ServiceData []byte
	BleAddress  string
}

// Scanner turns raw platform advertisements into ScanEvent values,
// filtering out the Nearby-Share reserved model id and deduplicating
// repeat sightings of an already-known device.
type Scanner struct {
	onEvent func(ScanEvent)
	known   map[string]*FastPairDevice // keyed by BLE address
}

// NewScanner constructs a scanner that invokes onEvent for each
// discovered or lost device.
func NewScanner(onEvent func(ScanEvent)) *Scanner {
	return &Scanner{onEvent: onEvent, known: make(map[string]*FastPairDevice)}
}

// OnAdvertisementFound processes one sighting. Advertisements carrying the
// reserved Nearby-Share model id are dropped silently (logged at debug).
func (s *Scanner) OnAdvertisementFound(adv Advertisement) {
	modelID, err := ParseDiscoverableModelID(adv.ServiceData)
	if err != nil {
		log.WithField("ble_address", adv.BleAddress).Debug("fastpair: advertisement missing model id, dropping")
		return
	}
	if strings.EqualFold(modelID, ReservedModelID) {
		log.WithField("ble_address", adv.BleAddress).Debug("fastpair: dropping reserved Nearby-Share model id")
		return
	}

	if existing, ok := s.known[adv.BleAddress]; ok {
		s.onEvent(ScanEvent{Device: existing})
		return
	}

	device := NewFastPairDevice(modelID, adv.BleAddress, ProtocolInitialPairing)
	s.known[adv.BleAddress] = device
	s.onEvent(ScanEvent{Device: device})
}

// OnAdvertisementLost reports that a previously-seen address is no longer
// visible: it forgets the device and emits a ScanEvent with Lost set. It
// does not notify or fail any pairing in progress for that device.
func (s *Scanner) OnAdvertisementLost(bleAddress string) {
	device, ok := s.known[bleAddress]
	if !ok {
		return
	}
	delete(s.known, bleAddress)
	s.onEvent(ScanEvent{Device: device, Lost: true})
}
