package fastpair

import "github.com/pkg/errors"

// DataEncryptor wraps the session key a handshake derived and exposes the
// encrypt/decrypt operations the GATT handshake client needs, without
// exposing the key material itself to callers.
type DataEncryptor struct {
	sessionKey   [aesBlockByteSize]byte
	ownPublicKey [publicKeyByteSize]byte
	hasPublicKey bool
}

// NewDataEncryptorFromECDH builds an encryptor for initial or retroactive
// pairing, running the ECDH handshake against the provider's anti-spoofing
// public key.
func NewDataEncryptorFromECDH(providerPublicKey []byte) (DataEncryptor, error) {
	sessionKey, ownPublicKey, err := deriveSessionKey(providerPublicKey)
	if err != nil {
		return DataEncryptor{}, err
	}
	return DataEncryptor{sessionKey: sessionKey, ownPublicKey: ownPublicKey, hasPublicKey: true}, nil
}

// NewDataEncryptorFromAccountKey builds an encryptor for subsequent
// pairing, where the account key itself is the AES session key and there
// is no ECDH exchange.
func NewDataEncryptorFromAccountKey(key AccountKey) DataEncryptor {
	var sessionKey [aesBlockByteSize]byte
	copy(sessionKey[:], key[:])
	return DataEncryptor{sessionKey: sessionKey}
}

// Encrypt runs AES-128 ECB over a single 16-byte block.
func (e DataEncryptor) Encrypt(block [aesBlockByteSize]byte) ([aesBlockByteSize]byte, error) {
	return aesECBEncryptBlock(e.sessionKey, block)
}

// Decrypt runs the inverse of Encrypt.
func (e DataEncryptor) Decrypt(block [aesBlockByteSize]byte) ([aesBlockByteSize]byte, error) {
	return aesECBDecryptBlock(e.sessionKey, block)
}

// PublicKey returns this side's ephemeral ECDH public key, present only
// when the encryptor was built via ECDH (initial/retroactive pairing).
func (e DataEncryptor) PublicKey() ([publicKeyByteSize]byte, bool) {
	return e.ownPublicKey, e.hasPublicKey
}

// ParseResponse decrypts and parses a key-based pairing response.
func (e DataEncryptor) ParseResponse(ciphertext []byte) (KeyBasedPairingResponse, error) {
	var block [aesBlockByteSize]byte
	if len(ciphertext) != aesBlockByteSize {
		return KeyBasedPairingResponse{}, errors.Errorf("fastpair: response ciphertext must be %d bytes, got %d", aesBlockByteSize, len(ciphertext))
	}
	copy(block[:], ciphertext)
	plaintext, err := e.Decrypt(block)
	if err != nil {
		return KeyBasedPairingResponse{}, err
	}
	return ParseDecryptedResponse(plaintext)
}

// ParsePasskey decrypts and parses a passkey notification.
func (e DataEncryptor) ParsePasskey(ciphertext []byte) (Passkey, error) {
	var block [aesBlockByteSize]byte
	if len(ciphertext) != aesBlockByteSize {
		return Passkey{}, errors.Errorf("fastpair: passkey ciphertext must be %d bytes, got %d", aesBlockByteSize, len(ciphertext))
	}
	copy(block[:], ciphertext)
	plaintext, err := e.Decrypt(block)
	if err != nil {
		return Passkey{}, err
	}
	return ParseDecryptedPasskey(plaintext)
}
