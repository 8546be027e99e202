package fastpair

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// KeyBasedPairingResponse is the parsed plaintext of a decrypted key-based
// pairing notification.
type KeyBasedPairingResponse struct {
	ProviderAddress [providerAddrLen]byte
	Salt            [9]byte
}

// ParseDecryptedResponse parses 16 decrypted bytes as a key-based pairing
// response. It fails unless the message type byte equals
// MessageTypeKeyBasedPairingResponse.
func ParseDecryptedResponse(plaintext [aesBlockByteSize]byte) (KeyBasedPairingResponse, error) {
	if plaintext[0] != byte(MessageTypeKeyBasedPairingResponse) {
		return KeyBasedPairingResponse{}, errors.Errorf("fastpair: expected key-based pairing response, got message type 0x%02x", plaintext[0])
	}
	var resp KeyBasedPairingResponse
	copy(resp.ProviderAddress[:], plaintext[1:7])
	copy(resp.Salt[:], plaintext[7:16])
	return resp, nil
}

// Passkey is the parsed plaintext of a decrypted seeker's-passkey or
// provider's-passkey notification.
type Passkey struct {
	MessageType FastPairMessageType
	Code        uint32 // 24-bit value, top byte always zero
	Salt        [12]byte
}

// ParseDecryptedPasskey parses 16 decrypted bytes as a passkey message. It
// fails unless the message type byte is a recognized passkey-family value.
func ParseDecryptedPasskey(plaintext [aesBlockByteSize]byte) (Passkey, error) {
	mt := FastPairMessageType(plaintext[0])
	switch mt {
	case MessageTypeSeekersPasskey, MessageTypeProvidersPasskey, MessageTypeKeyBasedPairingRequest:
	default:
		return Passkey{}, errors.Errorf("fastpair: unexpected passkey message type 0x%02x", plaintext[0])
	}
	code := binary.BigEndian.Uint32([]byte{0, plaintext[1], plaintext[2], plaintext[3]})
	p := Passkey{MessageType: mt, Code: code}
	copy(p.Salt[:], plaintext[4:16])
	return p, nil
}
