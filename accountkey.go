package fastpair

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// AccountKey is the 16-byte secret shared between a seeker's account and a
// provider once pairing completes. It is the root of the Bloom-filter
// matching scheme and the footprints association record.
type AccountKey [accountKeyByteSize]byte

// NewAccountKey generates a fresh, random AccountKey.
func NewAccountKey() (AccountKey, error) {
	var k AccountKey
	if _, err := rand.Read(k[:]); err != nil {
		return AccountKey{}, errors.Wrap(err, "fastpair: generate account key")
	}
	return k, nil
}

// AccountKeyFromBytes copies a 16-byte slice into an AccountKey.
func AccountKeyFromBytes(b []byte) (AccountKey, error) {
	var k AccountKey
	if len(b) != accountKeyByteSize {
		return k, errors.Errorf("fastpair: account key must be %d bytes, got %d", accountKeyByteSize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Ok reports whether the key is set, that is, not all zero bytes. The value
// of the leading byte is not checked.
func (k AccountKey) Ok() bool {
	return k != AccountKey{}
}

// Bytes returns the key's raw 16 bytes.
func (k AccountKey) Bytes() []byte {
	return k[:]
}

// String renders the key as lowercase hex, safe for logging identifiers but
// not the key material itself in production contexts.
func (k AccountKey) String() string {
	return hex.EncodeToString(k[:])
}

// Footprint returns the SHA-256 digest of the account key concatenated with
// the provider's public BLE address, the identifier used by a
// footprints-style account-association lookup.
func (k AccountKey) Footprint(publicAddress string) [sha256.Size]byte {
	h := sha256.New()
	h.Write(k[:])
	h.Write([]byte(publicAddress))
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
