package fastpair

// DeviceType classifies the accessory category reported in metadata,
// mirroring the protocol's device-type enumeration used for notification
// rendering.
type DeviceType int

const (
	DeviceTypeUnspecified DeviceType = iota
	DeviceTypeHeadphones
	DeviceTypeTrueWirelessHeadphones
	DeviceTypeSpeaker
	DeviceTypeMouse
	DeviceTypeKeyboard
	DeviceTypeWearable
)

// NotificationType controls how the host UI should surface a discovered or
// paired device.
type NotificationType int

const (
	NotificationTypeUnspecified NotificationType = iota
	NotificationTypeFastPair
	NotificationTypeSilent
	NotificationTypeApplicationLaunch
)

// DeviceMetadata is the result of a repository lookup keyed by model id.
// Devices without an anti-spoofing public key are legacy v1
// devices: they skip the ECDH handshake and are paired without encryption.
type DeviceMetadata struct {
	ModelID string

	// AntiSpoofingPublicKey is the provider's long-lived NIST P-256
	// uncompressed public key as 64 bytes of raw X||Y, without the 0x04
	// prefix; other lengths are rejected when the session key is derived.
	// Its absence marks the device as DeviceVersionV1.
	AntiSpoofingPublicKey []byte

	DeviceType       DeviceType
	NotificationType NotificationType

	DisplayName string
	ImageURL    string
	TrueWirelessImages *TrueWirelessImages
}

// TrueWirelessImages carries the left-bud/right-bud/case renders used by
// true-wireless headphone notifications.
type TrueWirelessImages struct {
	LeftBudURL  string
	RightBudURL string
	CaseURL     string
}

// Version reports the protocol version this metadata implies: the presence
// of an anti-spoofing key is the sole discriminator.
func (m DeviceMetadata) Version() DeviceVersion {
	if len(m.AntiSpoofingPublicKey) == 0 {
		return DeviceVersionV1
	}
	return DeviceVersionV2Plus
}
