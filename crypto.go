package fastpair

import (
	"crypto/aes"
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"

	"github.com/pkg/errors"
)

// These primitives are deliberately built directly on crypto/ecdh,
// crypto/aes, and crypto/sha256 rather than a third-party crypto package:
// the protocol fixes NIST P-256 ECDH and single-block AES-128-ECB exactly,
// both of which the standard library implements directly, and no package
// in the dependency set used elsewhere in this repository offers a
// narrower or safer fit for either primitive.

// deriveSessionKey runs the ECDH handshake against a 64-byte uncompressed
// provider public key (X||Y, no 0x04 prefix) and returns the 16-byte
// session key plus this side's own ephemeral public key bytes (X||Y, no
// prefix). It reports an error if the input is not a
// valid point on the curve or is not 64 bytes.
func deriveSessionKey(providerPublicKey []byte) (sessionKey [aesBlockByteSize]byte, ownPublicKey [publicKeyByteSize]byte, err error) {
	if len(providerPublicKey) != publicKeyByteSize {
		return sessionKey, ownPublicKey, errors.Errorf("fastpair: provider public key must be %d bytes, got %d", publicKeyByteSize, len(providerPublicKey))
	}

	curve := ecdh.P256()

	uncompressed := make([]byte, 0, publicKeyByteSize+1)
	uncompressed = append(uncompressed, 0x04)
	uncompressed = append(uncompressed, providerPublicKey...)

	providerKey, err := curve.NewPublicKey(uncompressed)
	if err != nil {
		return sessionKey, ownPublicKey, errors.Wrap(err, "fastpair: provider public key is not a valid P-256 point")
	}

	ephemeral, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		return sessionKey, ownPublicKey, errors.Wrap(err, "fastpair: generate ephemeral keypair")
	}

	shared, err := ephemeral.ECDH(providerKey)
	if err != nil {
		return sessionKey, ownPublicKey, errors.Wrap(err, "fastpair: ECDH key agreement")
	}

	digest := sha256.Sum256(shared)
	copy(sessionKey[:], digest[:aesBlockByteSize])

	ownUncompressed := ephemeral.PublicKey().Bytes()
	// ownUncompressed is 0x04 || X || Y; strip the prefix.
	copy(ownPublicKey[:], ownUncompressed[1:])

	return sessionKey, ownPublicKey, nil
}

// aesECBEncryptBlock encrypts exactly one 16-byte block with AES-128 under
// key. The mode is ECB: callers always supply a full block of random or
// pseudo-random plaintext, so there is no cross-block pattern to leak.
func aesECBEncryptBlock(key [aesBlockByteSize]byte, plaintext [aesBlockByteSize]byte) ([aesBlockByteSize]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return [aesBlockByteSize]byte{}, errors.Wrap(err, "fastpair: construct AES cipher")
	}
	var ciphertext [aesBlockByteSize]byte
	block.Encrypt(ciphertext[:], plaintext[:])
	return ciphertext, nil
}

// aesECBDecryptBlock decrypts exactly one 16-byte block with AES-128 under
// key.
func aesECBDecryptBlock(key [aesBlockByteSize]byte, ciphertext [aesBlockByteSize]byte) ([aesBlockByteSize]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return [aesBlockByteSize]byte{}, errors.Wrap(err, "fastpair: construct AES cipher")
	}
	var plaintext [aesBlockByteSize]byte
	block.Decrypt(plaintext[:], ciphertext[:])
	return plaintext, nil
}
