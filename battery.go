package fastpair

import "github.com/pkg/errors"

const (
	batteryChargingMask    byte = 0x80
	batteryPercentageMask  byte = 0x7F
	batteryUnknownNotChg   byte = 0x7F
	batteryUnknownCharging byte = 0xFF
)

// BatteryInfo is one component's charge state: a single earbud, a case, or
// a standalone device. A byte value of 0bS1111111 means the percentage is
// unknown; Known is false in that case.
type BatteryInfo struct {
	IsCharging bool
	Percentage int8 // valid range 0-100; meaningless when Known is false
	Known      bool
}

// BatteryInfoFromByte decodes one battery byte, form 0bSVVVVVVV: S is the
// charging bit, V is a 0-100 percentage or all-ones if unknown.
func BatteryInfoFromByte(b byte) BatteryInfo {
	charging := b&batteryChargingMask != 0
	pct := int8(b & batteryPercentageMask)
	if pct < 0 || pct > 100 {
		return BatteryInfo{IsCharging: charging}
	}
	return BatteryInfo{IsCharging: charging, Percentage: pct, Known: true}
}

// ToByte re-encodes the battery info into its wire byte.
func (b BatteryInfo) ToByte() byte {
	if !b.Known {
		if b.IsCharging {
			return batteryUnknownCharging
		}
		return batteryUnknownNotChg
	}
	v := byte(b.Percentage)
	if b.IsCharging {
		v |= batteryChargingMask
	}
	return v
}

// BatteryNotificationType distinguishes whether a battery extra field was
// carried under a show-UI or hide-UI advertisement header.
type BatteryNotificationType int

const (
	BatteryNotificationShowUI BatteryNotificationType = iota
	BatteryNotificationHideUI
)

// BatteryNotification is the decoded battery extra field: either a single
// component, or the left-bud/right-bud/case triple of a true-wireless
// headset.
type BatteryNotification struct {
	Type      BatteryNotificationType
	Batteries []BatteryInfo
}

// BatteryNotificationFromBytes decodes a 1-byte (single component) or
// 3-byte (true wireless: left, right, case) battery field. Any other
// length is rejected.
func BatteryNotificationFromBytes(b []byte, t BatteryNotificationType) (BatteryNotification, error) {
	switch len(b) {
	case 1:
		return BatteryNotification{Type: t, Batteries: []BatteryInfo{BatteryInfoFromByte(b[0])}}, nil
	case 3:
		return BatteryNotification{Type: t, Batteries: []BatteryInfo{
			BatteryInfoFromByte(b[0]),
			BatteryInfoFromByte(b[1]),
			BatteryInfoFromByte(b[2]),
		}}, nil
	default:
		return BatteryNotification{}, errors.Errorf("fastpair: unexpected battery notification length %d", len(b))
	}
}
