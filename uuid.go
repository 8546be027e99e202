package fastpair

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// bluetoothBaseUUIDSuffix is appended to a 16-bit UUID to form its 128-bit form,
// per the Bluetooth SIG base UUID.
var bluetoothBaseUUIDSuffix = []byte{
	0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0x80, 0x5F, 0x9B, 0x34, 0xFB,
}

// UUID is a Bluetooth UUID, stored little-endian as it appears on the
// wire. It is backed by a fixed array rather than a slice so values remain
// comparable and usable as map keys, e.g. when resolving a
// GattCharacteristic by UUID.
type UUID struct {
	b [16]byte
	n int // wire length: 2, 4, or 16
}

// UUID16 builds the 2-byte wire form of a 16-bit Bluetooth SIG UUID, e.g.
// the Fast Pair service UUID 0xFE2C; Full128 expands it.
func UUID16(v uint16) UUID {
	var u UUID
	u.b[0] = byte(v)
	u.b[1] = byte(v >> 8)
	u.n = 2
	return u
}

// MustParseUUID parses a canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// UUID string and panics if it is malformed. It exists for package-level
// variable initialization.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseUUID parses a canonical UUID string into its little-endian wire
// form.
func ParseUUID(s string) (UUID, error) {
	s = strings.ReplaceAll(s, "-", "")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return UUID{}, fmt.Errorf("fastpair: invalid uuid %q: %w", s, err)
	}
	if len(raw) != 16 && len(raw) != 2 && len(raw) != 4 {
		return UUID{}, fmt.Errorf("fastpair: invalid uuid length %q", s)
	}
	var u UUID
	copy(u.b[:], reverse(raw))
	u.n = len(raw)
	return u, nil
}

// Len reports the wire length of the UUID: 2 for 16-bit, 16 for 128-bit.
func (u UUID) Len() int { return u.n }

// Bytes returns the little-endian wire bytes of the UUID.
func (u UUID) Bytes() []byte { return append([]byte(nil), u.b[:u.n]...) }

// Full128 expands a 16-bit UUID to its 128-bit Bluetooth-base form. It is a
// no-op for UUIDs that are already 128-bit.
func (u UUID) Full128() UUID {
	if u.n == 16 {
		return u
	}
	var full UUID
	// Little-endian: the reversed suffix fills the low 12 bytes and the
	// short value sits above it.
	copy(full.b[:12], reverse(bluetoothBaseUUIDSuffix))
	copy(full.b[12:], u.b[:u.n])
	full.n = 16
	return full
}

// Equal reports whether two UUIDs denote the same value, expanding 16-bit
// forms to 128-bit before comparing.
func (u UUID) Equal(v UUID) bool {
	return u.Full128() == v.Full128()
}

// String renders the UUID in canonical big-endian hex form.
func (u UUID) String() string {
	big := reverse(u.b[:u.n])
	h := hex.EncodeToString(big)
	if len(big) != 16 {
		return h
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", h[0:8], h[8:12], h[12:16], h[16:20], h[20:32])
}

// reverse returns a new slice with the bytes of b in reverse order,
// converting between the wire's little-endian UUID encoding and the
// conventional big-endian string form.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
