package main

import fastpair "github.com/fastpair-go/seeker"

// The stand-ins below satisfy the GattClient, ClassicPairing, and
// Repository interfaces with no-op behavior so this command builds and
// runs standalone. A real deployment replaces all three with adapters
// over an actual BLE stack and an account service.

type noopGattClient struct{}

func (noopGattClient) Connect(address string) bool { return false }
func (noopGattClient) Disconnect()                 {}
func (noopGattClient) DiscoverServiceAndCharacteristics(service fastpair.UUID, characteristics []fastpair.UUID) bool {
	return false
}
func (noopGattClient) GetCharacteristic(service, characteristic fastpair.UUID) (fastpair.GattCharacteristic, bool) {
	return fastpair.GattCharacteristic{}, false
}
func (noopGattClient) SetCharacteristicSubscription(ch fastpair.GattCharacteristic, subscribe bool, onValue func([]byte)) bool {
	return false
}
func (noopGattClient) WriteCharacteristic(ch fastpair.GattCharacteristic, value []byte) bool {
	return false
}

type noopClassicPairing struct{}

func (noopClassicPairing) IsPaired(publicAddress string) bool { return false }
func (noopClassicPairing) Unpair(publicAddress string) error  { return nil }
func (noopClassicPairing) InitiatePairing(publicAddress string, cb fastpair.ClassicPairingCallback) error {
	return nil
}
func (noopClassicPairing) CancelPairing(publicAddress string)  {}
func (noopClassicPairing) FinishPairing(publicAddress string) error { return nil }

type noopRepository struct{}

func (noopRepository) GetDeviceMetadata(modelID string) (*fastpair.DeviceMetadata, error) {
	return nil, nil
}
func (noopRepository) CheckIfAssociatedWithCurrentAccount(filter fastpair.AssociationFilter) (fastpair.AccountKey, string, bool, error) {
	return fastpair.AccountKey{}, "", false, nil
}
func (noopRepository) IsDeviceSavedToAccount(publicAddress string) (bool, error) { return false, nil }
func (noopRepository) WriteAccountAssociation(device *fastpair.FastPairDevice) error { return nil }
func (noopRepository) DeleteAssociatedDevice(key fastpair.AccountKey) error          { return nil }
func (noopRepository) GetUserSavedDevices() (fastpair.SavedDevicesOptInStatus, []*fastpair.FastPairDevice, error) {
	return fastpair.SavedDevicesOptInStatusUnknown, nil, nil
}
