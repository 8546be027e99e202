package fastpair

// FastPairMessageType identifies the first byte of a decrypted GATT
// notification or write payload, grounded on the protocol's message type
// enumeration.
type FastPairMessageType byte

const (
	MessageTypeKeyBasedPairingRequest  FastPairMessageType = msgTypeKeyBasedPairingRequest
	MessageTypeKeyBasedPairingResponse FastPairMessageType = msgTypeKeyBasedPairingResp
	MessageTypeSeekersPasskey          FastPairMessageType = msgTypeSeekersPasskey
	MessageTypeProvidersPasskey        FastPairMessageType = msgTypeProvidersPasskey
)

func (t FastPairMessageType) String() string {
	switch t {
	case MessageTypeKeyBasedPairingRequest:
		return "KeyBasedPairingRequest"
	case MessageTypeKeyBasedPairingResponse:
		return "KeyBasedPairingResponse"
	case MessageTypeSeekersPasskey:
		return "SeekersPasskey"
	case MessageTypeProvidersPasskey:
		return "ProvidersPasskey"
	default:
		return "Unknown"
	}
}
