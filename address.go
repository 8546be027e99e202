package fastpair

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// parseBluetoothAddress accepts either a bare 12-hex-digit address
// ("1A2B3C4D5E6F") or a colon/dash-separated MAC-style address
// ("1A:2B:3C:4D:5E:6F" / "1A-2B-3C-4D-5E-6F") and returns the 6 raw bytes.
func parseBluetoothAddress(input string) ([6]byte, error) {
	var out [6]byte

	switch len(input) {
	case 12:
		raw, err := hex.DecodeString(input)
		if err != nil {
			return out, errors.Wrapf(err, "fastpair: invalid bluetooth address %q", input)
		}
		copy(out[:], raw)
		return out, nil
	case 17:
		sep := input[2]
		if sep != ':' && sep != '-' {
			return out, errors.Errorf("fastpair: invalid bluetooth address separator in %q", input)
		}
		parts := strings.Split(input, string(sep))
		if len(parts) != 6 {
			return out, errors.Errorf("fastpair: invalid bluetooth address %q", input)
		}
		for i, p := range parts {
			if len(p) != 2 {
				return out, errors.Errorf("fastpair: invalid bluetooth address octet %q", p)
			}
			b, err := hex.DecodeString(p)
			if err != nil {
				return out, errors.Wrapf(err, "fastpair: invalid bluetooth address %q", input)
			}
			out[i] = b[0]
		}
		return out, nil
	default:
		return out, errors.Errorf("fastpair: unrecognized bluetooth address format %q", input)
	}
}

// formatBluetoothAddress renders a 6-byte address in canonical
// colon-separated hex form.
func formatBluetoothAddress(addr [6]byte) string {
	s := hex.EncodeToString(addr[:])
	out := make([]byte, 0, 17)
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, s[i], s[i+1])
	}
	return string(out)
}
