package fastpair

import "github.com/pkg/errors"

// NonDiscoverableAdvertisement is the decoded payload of a non-discoverable
// Fast Pair advertisement: the Bloom filter bytes used to test account-key
// membership, the salt that built it, and an optional battery reading.
type NonDiscoverableAdvertisement struct {
	ShowUI               bool
	AccountKeyFilterBits []byte
	Salt                 []byte
	Battery              *BatteryNotification
}

const (
	frameTypeShowUI byte = 0b0000
	frameTypeHideUI byte = 0b0010

	fieldTypeAccountKeyFilter byte = 0x0
	fieldTypeSalt             byte = 0x1
	fieldTypeBattery          byte = 0x3
	fieldTypeBatteryNoNotify  byte = 0x4
)

// ParseNonDiscoverableAdvertisement decodes raw, the service-data payload
// of a non-discoverable advertisement, falling back to seekerAddress (the
// scanning side's 6-byte BLE address) as the salt when none is present on
// the wire.
func ParseNonDiscoverableAdvertisement(raw []byte, seekerAddress [6]byte) (NonDiscoverableAdvertisement, error) {
	if len(raw) < 1 {
		return NonDiscoverableAdvertisement{}, errors.New("fastpair: empty non-discoverable advertisement")
	}

	// Frame type lives in the top nibble (0b0000 show-UI, 0b0010 hide-UI).
	// The bottom nibble carries version/reserved bits the encoder doesn't
	// consistently write; the decoder tolerates whatever it finds there
	// rather than rejecting on it.
	header := raw[0]
	frameType := header >> 4
	var showUI bool
	switch frameType {
	case frameTypeShowUI:
		showUI = true
	case frameTypeHideUI:
		showUI = false
	default:
		return NonDiscoverableAdvertisement{}, errors.Errorf("fastpair: unrecognized advertisement frame type 0x%x", frameType)
	}

	var out NonDiscoverableAdvertisement
	out.ShowUI = showUI

	haveFilter := false
	var batteryBytes []byte
	batteryNotifyType := BatteryNotificationHideUI
	if showUI {
		batteryNotifyType = BatteryNotificationShowUI
	}

	pos := 1
	for pos < len(raw) {
		fieldHeader := raw[pos]
		length := int(fieldHeader >> 4)
		fieldType := fieldHeader & 0x0F
		pos++

		if length == 0 {
			return NonDiscoverableAdvertisement{}, errors.New("fastpair: zero-length extra field")
		}
		if pos+length > len(raw) {
			return NonDiscoverableAdvertisement{}, errors.New("fastpair: extra field length exceeds remaining bytes")
		}
		value := raw[pos : pos+length]
		pos += length

		switch fieldType {
		case fieldTypeAccountKeyFilter:
			if haveFilter {
				return NonDiscoverableAdvertisement{}, errors.New("fastpair: duplicate account-key-filter field")
			}
			out.AccountKeyFilterBits = append([]byte(nil), value...)
			haveFilter = true
		case fieldTypeSalt:
			if length != 1 && length != 2 {
				return NonDiscoverableAdvertisement{}, errors.Errorf("fastpair: invalid salt field length %d", length)
			}
			out.Salt = append([]byte(nil), value...)
		case fieldTypeBattery, fieldTypeBatteryNoNotify:
			if length != 1 && length != 3 {
				return NonDiscoverableAdvertisement{}, errors.Errorf("fastpair: invalid battery field length %d", length)
			}
			batteryBytes = append([]byte(nil), value...)
		default:
			// Unknown extra fields are ignored; they're advisory
			// tolerance for fields outside the required set.
		}
	}

	if !haveFilter {
		return NonDiscoverableAdvertisement{}, errors.New("fastpair: missing account-key-filter field")
	}
	if out.Salt == nil {
		out.Salt = append([]byte(nil), seekerAddress[:]...)
	}
	if batteryBytes != nil {
		bn, err := BatteryNotificationFromBytes(batteryBytes, batteryNotifyType)
		if err != nil {
			return NonDiscoverableAdvertisement{}, err
		}
		out.Battery = &bn
	}

	return out, nil
}
