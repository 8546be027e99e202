package fastpair

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

// ParseDiscoverableModelID extracts the hex model id from a discoverable
// advertisement's Fast Pair service-data payload. The
// payload is exactly the 3-byte model id; anything beyond that is
// advisory and ignored.
func ParseDiscoverableModelID(serviceData []byte) (string, error) {
	if len(serviceData) < 3 {
		return "", errors.Errorf("fastpair: discoverable payload too short: %d bytes", len(serviceData))
	}
	return hex.EncodeToString(serviceData[:3]), nil
}

// mediumsVersion and mediumsSocketVersion enumerate the wire versions this
// codec accepts for the Mediums BLE envelope.
type mediumsVersion byte

const (
	mediumsVersion1 mediumsVersion = 1
	mediumsVersion2 mediumsVersion = 2
)

func (v mediumsVersion) supported() bool {
	return v == mediumsVersion1 || v == mediumsVersion2
}

type mediumsSocketVersion byte

const (
	mediumsSocketVersion1 mediumsSocketVersion = 1
	mediumsSocketVersion2 mediumsSocketVersion = 2
)

func (v mediumsSocketVersion) supported() bool {
	return v == mediumsSocketVersion1 || v == mediumsSocketVersion2
}

// Byte 0 packs VERSION (3 bits), SOCKET_VERSION (3 bits), and the fast
// advertisement flag (1 bit); the low bit is reserved.
const (
	mediumsVersionBitmask       byte = 0xE0
	mediumsVersionShift              = 5
	mediumsSocketVersionBitmask byte = 0x1C
	mediumsSocketVersionShift        = 2
	mediumsFastFlagBit          byte = 0x02

	mediumsServiceIDHashLen    = 3
	mediumsDeviceTokenLen      = 2
	mediumsStandardDataSizeLen = 4
	mediumsFastDataSizeLen     = 1

	mediumsMaxFastFrameLen     = 27
	mediumsMaxStandardFrameLen = 512

	mediumsFieldMaskPSM byte = 0x01
	mediumsPSMLen            = 2
)

// MediumsFrame is the envelope exchanged when a Fast Pair socket is set up
// over BLE. It is fast-mode iff ServiceIDHash is empty; otherwise
// ServiceIDHash must be exactly 3 bytes. Fast mode drops the service id
// hash and shrinks the data-size field to a single byte, since the hash
// is already carried elsewhere in the Nearby Connections advertisement.
type MediumsFrame struct {
	Version       mediumsVersion
	SocketVersion mediumsSocketVersion
	ServiceIDHash []byte // empty (fast mode) or 3 bytes
	Data          []byte
	DeviceToken   []byte // empty or 2 bytes

	// PSM is the L2CAP Protocol/Service Multiplexer, set via
	// WithPSM and round-tripped only through SerializeWithExtraFields /
	// ParseMediumsFrame.
	psm    uint16
	hasPSM bool
}

// NewMediumsFrame validates and constructs a frame. It returns an error
// describing which invariant failed rather than leaving a partially
// constructed value; on error the returned frame is the zero value.
func NewMediumsFrame(version mediumsVersion, socketVersion mediumsSocketVersion, serviceIDHash, data, deviceToken []byte) (MediumsFrame, error) {
	if !version.supported() {
		return MediumsFrame{}, errors.Errorf("fastpair: unsupported mediums version %d", version)
	}
	if !socketVersion.supported() {
		return MediumsFrame{}, errors.Errorf("fastpair: unsupported mediums socket version %d", socketVersion)
	}
	if len(serviceIDHash) != 0 && len(serviceIDHash) != mediumsServiceIDHashLen {
		return MediumsFrame{}, errors.Errorf("fastpair: service id hash must be empty or %d bytes, got %d", mediumsServiceIDHashLen, len(serviceIDHash))
	}
	if len(deviceToken) != 0 && len(deviceToken) != mediumsDeviceTokenLen {
		return MediumsFrame{}, errors.Errorf("fastpair: device token must be empty or %d bytes, got %d", mediumsDeviceTokenLen, len(deviceToken))
	}
	if len(serviceIDHash) == 0 && len(data) > 0xFF {
		return MediumsFrame{}, errors.Errorf("fastpair: fast-mode data too long: %d bytes", len(data))
	}

	f := MediumsFrame{
		Version:       version,
		SocketVersion: socketVersion,
		ServiceIDHash: serviceIDHash,
		Data:          data,
		DeviceToken:   deviceToken,
	}
	if err := f.checkLength(f.Serialize()); err != nil {
		return MediumsFrame{}, err
	}
	return f, nil
}

// WithPSM returns a copy of f carrying a PSM extra field, serialized only
// by SerializeWithExtraFields.
func (f MediumsFrame) WithPSM(psm uint16) MediumsFrame {
	f.psm = psm
	f.hasPSM = true
	return f
}

// IsFastMode reports whether this frame omits the service id hash.
func (f MediumsFrame) IsFastMode() bool {
	return len(f.ServiceIDHash) == 0
}

func (f MediumsFrame) checkLength(serialized []byte) error {
	limit := mediumsMaxStandardFrameLen
	if f.IsFastMode() {
		limit = mediumsMaxFastFrameLen
	}
	if len(serialized) > limit {
		return errors.Errorf("fastpair: mediums frame too long: %d bytes (limit %d)", len(serialized), limit)
	}
	return nil
}

// Serialize writes the frame without extra fields.
func (f MediumsFrame) Serialize() []byte {
	header := byte(f.Version)<<mediumsVersionShift&mediumsVersionBitmask
	header |= byte(f.SocketVersion)<<mediumsSocketVersionShift&mediumsSocketVersionBitmask
	if f.IsFastMode() {
		header |= mediumsFastFlagBit
	}

	out := make([]byte, 0, 1+len(f.ServiceIDHash)+mediumsStandardDataSizeLen+len(f.Data)+len(f.DeviceToken))
	out = append(out, header)
	if !f.IsFastMode() {
		out = append(out, f.ServiceIDHash...)
	}
	if f.IsFastMode() {
		out = append(out, byte(len(f.Data)))
	} else {
		var size [mediumsStandardDataSizeLen]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(f.Data)))
		out = append(out, size[:]...)
	}
	out = append(out, f.Data...)
	out = append(out, f.DeviceToken...)
	return out
}

// SerializeWithExtraFields writes the frame followed by a PSM extra field
// when one was attached via WithPSM. With no PSM set, this is identical
// to Serialize: the extra-field mask byte itself is omitted, not just the
// PSM payload.
func (f MediumsFrame) SerializeWithExtraFields() ([]byte, error) {
	base := f.Serialize()
	if !f.hasPSM {
		if err := f.checkLength(base); err != nil {
			return nil, err
		}
		return base, nil
	}

	var psmBytes [mediumsPSMLen]byte
	binary.BigEndian.PutUint16(psmBytes[:], f.psm)

	out := make([]byte, 0, len(base)+1+mediumsPSMLen)
	out = append(out, base...)
	out = append(out, mediumsFieldMaskPSM)
	out = append(out, psmBytes[:]...)

	if err := f.checkLength(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseMediumsFrame parses a Mediums frame, including the device token and
// PSM extra field when the trailing bytes needed for either are present.
// It returns an error, leaving any partially decoded state discarded, on
// any invariant violation.
func ParseMediumsFrame(raw []byte) (MediumsFrame, error) {
	if len(raw) < 1 {
		return MediumsFrame{}, errors.New("fastpair: mediums frame too short")
	}
	header := raw[0]
	version := mediumsVersion((header & mediumsVersionBitmask) >> mediumsVersionShift)
	socketVersion := mediumsSocketVersion((header & mediumsSocketVersionBitmask) >> mediumsSocketVersionShift)
	fast := header&mediumsFastFlagBit != 0
	rest := raw[1:]

	var serviceIDHash []byte
	if !fast {
		if len(rest) < mediumsServiceIDHashLen {
			return MediumsFrame{}, errors.New("fastpair: mediums frame missing service id hash")
		}
		serviceIDHash = rest[:mediumsServiceIDHashLen]
		rest = rest[mediumsServiceIDHashLen:]
	}

	dataSizeLen := mediumsStandardDataSizeLen
	if fast {
		dataSizeLen = mediumsFastDataSizeLen
	}
	if len(rest) < dataSizeLen {
		return MediumsFrame{}, errors.New("fastpair: mediums frame missing data size")
	}
	var dataSize int
	if fast {
		dataSize = int(rest[0])
	} else {
		dataSize = int(binary.BigEndian.Uint32(rest[:mediumsStandardDataSizeLen]))
	}
	rest = rest[dataSizeLen:]

	if len(rest) < dataSize {
		return MediumsFrame{}, errors.Errorf("fastpair: mediums frame data truncated: want %d bytes, have %d", dataSize, len(rest))
	}
	data := rest[:dataSize]
	rest = rest[dataSize:]

	var deviceToken []byte
	if len(rest) >= mediumsDeviceTokenLen {
		deviceToken = rest[:mediumsDeviceTokenLen]
		rest = rest[mediumsDeviceTokenLen:]
	}

	f, err := NewMediumsFrame(version, socketVersion, serviceIDHash, data, deviceToken)
	if err != nil {
		return MediumsFrame{}, err
	}

	if len(rest) >= 1+mediumsPSMLen && rest[0]&mediumsFieldMaskPSM != 0 {
		f.psm = binary.BigEndian.Uint16(rest[1 : 1+mediumsPSMLen])
		f.hasPSM = true
	}

	return f, nil
}
