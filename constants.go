package fastpair

// Fast Pair GATT service and characteristic UUIDs. Each
// characteristic has a legacy 16-bit (v1) form and a 128-bit (v2) form; the
// v2 form is preferred and the v1 form is the fallback.
var (
	FastPairServiceUUID = UUID16(0xFE2C)

	KeyBasedCharacteristicUUIDV1 = UUID16(0x1234)
	KeyBasedCharacteristicUUIDV2 = MustParseUUID("FE2C1234-8366-4814-8EB0-01DE32100BEA")

	PasskeyCharacteristicUUIDV1 = UUID16(0x1235)
	PasskeyCharacteristicUUIDV2 = MustParseUUID("FE2C1235-8366-4814-8EB0-01DE32100BEA")

	AccountKeyCharacteristicUUIDV1 = UUID16(0x1236)
	AccountKeyCharacteristicUUIDV2 = MustParseUUID("FE2C1236-8366-4814-8EB0-01DE32100BEA")
)

// ReservedModelID is the Nearby-Share model id that shares the Fast Pair
// service UUID but belongs to a different protocol; advertisements
// carrying it must be filtered out.
const ReservedModelID = "fc128e"

const (
	aesBlockByteSize     = 16
	accountKeyByteSize   = 16
	publicKeyByteSize    = 64
	providerAddrStart    = 2
	providerAddrLen      = 6
	seekerAddrStart      = 8
	seekerAddrLen        = 6
)

// message type byte values.
const (
	msgTypeKeyBasedPairingRequest byte = 0x00
	msgTypeKeyBasedPairingResp    byte = 0x01
	msgTypeSeekersPasskey         byte = 0x02
	msgTypeProvidersPasskey       byte = 0x03
	msgTypeKeyBasedPairingReqV2   byte = 0x04 // account-key write request prefix
)
