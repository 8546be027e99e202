package fastpair

import (
	"crypto/sha256"
	"encoding/binary"
)

// SavedDevicesOptInStatus reports the account's opt-in state for syncing
// saved devices across the user's other clients.
type SavedDevicesOptInStatus int

const (
	SavedDevicesOptInStatusUnknown SavedDevicesOptInStatus = iota
	SavedDevicesOptInStatusOptedIn
	SavedDevicesOptInStatusOptedOut
)

// AssociationFilter narrows a check-if-associated lookup, e.g. by the
// advertised Bloom filter or a specific model id.
type AssociationFilter struct {
	ModelID string
	Filter  AccountKeyFilter
}

// Repository is the external collaborator that fetches device metadata
// and manages the account's saved-device associations. A
// cloud-backed adapter outside this package implements it.
type Repository interface {
	// GetDeviceMetadata looks up metadata by the 3-byte hex model id.
	GetDeviceMetadata(modelID string) (*DeviceMetadata, error)
	// CheckIfAssociatedWithCurrentAccount tests filter against the
	// account's saved account keys, returning the matching key and model
	// id if any.
	CheckIfAssociatedWithCurrentAccount(filter AssociationFilter) (AccountKey, string, bool, error)
	// IsDeviceSavedToAccount reports whether a device at publicAddress is
	// already associated with the current account.
	IsDeviceSavedToAccount(publicAddress string) (bool, error)
	// WriteAccountAssociation commits device's account key to the cloud.
	WriteAccountAssociation(device *FastPairDevice) error
	// DeleteAssociatedDevice removes the saved-device record for key.
	DeleteAssociatedDevice(key AccountKey) error
	// GetUserSavedDevices lists the account's saved devices along with
	// its saved-devices sync opt-in status.
	GetUserSavedDevices() (SavedDevicesOptInStatus, []*FastPairDevice, error)
}

// forgetPatternPrefix marks a saved-device record as deleted regardless of
// its other fields.
var forgetPatternPrefix = [4]byte{0xF0, 0xF0, 0xF0, 0xF0}

// AccountKeyPublicAddressHash computes the SHA-256 of the account key
// concatenated with the 6-byte big-endian public address, the identifier
// used to index a device on the repository's server side.
func AccountKeyPublicAddressHash(key AccountKey, publicAddress [6]byte) [sha256.Size]byte {
	h := sha256.New()
	h.Write(key[:])
	h.Write(publicAddress[:])
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// IsForgotten reports whether a saved-device record's hash carries the
// forget-pattern prefix and should be treated as deleted.
func IsForgotten(hash [sha256.Size]byte) bool {
	return binary.BigEndian.Uint32(hash[:4]) == binary.BigEndian.Uint32(forgetPatternPrefix[:])
}
