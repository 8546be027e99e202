// Package seekertest provides in-memory fakes for the external
// collaborators the fastpair package depends on, for use in tests that
// exercise the pairing pipeline without real BLE or cloud access.
package seekertest

import (
	"sync"

	fastpair "github.com/fastpair-go/seeker"
	"github.com/pkg/errors"
)

// FakeRepository is an in-memory Repository. Callers preload metadata and
// error results before exercising the device under test.
type FakeRepository struct {
	mu sync.Mutex

	metadata map[string]*fastpair.DeviceMetadata
	savedDevices []*fastpair.FastPairDevice
	optInStatus  fastpair.SavedDevicesOptInStatus

	writeAssociationErr error
	deleteAssociatedErr error
	isSavedErr          error
	isSaved             bool

	associatedKey     fastpair.AccountKey
	associatedModelID string
	hasAssociation    bool

	written []*fastpair.FastPairDevice
}

// NewFakeRepository returns an empty fake.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{metadata: make(map[string]*fastpair.DeviceMetadata)}
}

// SetMetadata preloads the metadata returned for modelID.
func (f *FakeRepository) SetMetadata(modelID string, md *fastpair.DeviceMetadata) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metadata[modelID] = md
}

// SetIsDeviceSavedToAccount controls the result of IsDeviceSavedToAccount.
func (f *FakeRepository) SetIsDeviceSavedToAccount(saved bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isSaved = saved
	f.isSavedErr = err
}

// SetWriteAccountAssociationError controls the result of
// WriteAccountAssociation.
func (f *FakeRepository) SetWriteAccountAssociationError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeAssociationErr = err
}

// SetCheckAssociationResult controls the result of
// CheckIfAssociatedWithCurrentAccount.
func (f *FakeRepository) SetCheckAssociationResult(key fastpair.AccountKey, modelID string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.associatedKey = key
	f.associatedModelID = modelID
	f.hasAssociation = ok
}

// SetSavedDevices controls the result of GetUserSavedDevices.
func (f *FakeRepository) SetSavedDevices(status fastpair.SavedDevicesOptInStatus, devices []*fastpair.FastPairDevice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.optInStatus = status
	f.savedDevices = devices
}

// WrittenDevices returns every device passed to WriteAccountAssociation,
// in call order.
func (f *FakeRepository) WrittenDevices() []*fastpair.FastPairDevice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fastpair.FastPairDevice(nil), f.written...)
}

func (f *FakeRepository) GetDeviceMetadata(modelID string) (*fastpair.DeviceMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	md, ok := f.metadata[modelID]
	if !ok {
		return nil, errors.Errorf("seekertest: no fake metadata set for model id %q", modelID)
	}
	return md, nil
}

func (f *FakeRepository) CheckIfAssociatedWithCurrentAccount(filter fastpair.AssociationFilter) (fastpair.AccountKey, string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.associatedKey, f.associatedModelID, f.hasAssociation, nil
}

func (f *FakeRepository) IsDeviceSavedToAccount(publicAddress string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isSaved, f.isSavedErr
}

func (f *FakeRepository) WriteAccountAssociation(device *fastpair.FastPairDevice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeAssociationErr != nil {
		return f.writeAssociationErr
	}
	f.written = append(f.written, device)
	return nil
}

func (f *FakeRepository) DeleteAssociatedDevice(key fastpair.AccountKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteAssociatedErr
}

func (f *FakeRepository) GetUserSavedDevices() (fastpair.SavedDevicesOptInStatus, []*fastpair.FastPairDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.optInStatus, f.savedDevices, nil
}
