package fastpair

// PairFailure is the closed enumeration of ways the pairing pipeline can
// fail. Values are stable and should not be renumbered.
type PairFailure int

const (
	PairFailureUnknown PairFailure = iota
	PairFailureCreateGattConnection
	PairFailureGattServiceDiscovery
	PairFailureGattServiceDiscoveryTimeout
	PairFailureDataEncryptorRetrieval
	PairFailureKeyBasedPairingCharacteristicDiscovery
	PairFailurePasskeyCharacteristicDiscovery
	PairFailureAccountKeyCharacteristicDiscovery
	PairFailureKeyBasedPairingCharacteristicSubscription
	PairFailurePasskeyCharacteristicSubscription
	PairFailureKeyBasedPairingCharacteristicSubscriptionTimeout
	PairFailurePasskeyCharacteristicSubscriptionTimeout
	PairFailureKeyBasedPairingCharacteristicWrite
	PairFailurePasskeyCharacteristicWrite
	PairFailureAccountKeyCharacteristicWrite
	PairFailureKeyBasedPairingResponseTimeout
	PairFailurePasskeyResponseTimeout
	PairFailureKeyBasedPairingResponseDecrypt
	PairFailureIncorrectKeyBasedPairingResponseType
	PairFailurePasskeyDecrypt
	PairFailureIncorrectPasskeyResponseType
	PairFailurePasskeyMismatch
	PairFailurePairingDeviceLostBetweenGattConnectionAttempts
	PairFailureDeviceLostMidPairing
	PairFailurePairingAndConnect
	PairFailurePairingTimeout
	PairFailureWriteAccountKeyToFootprints
)

var pairFailureNames = map[PairFailure]string{
	PairFailureUnknown:                             "Unknown",
	PairFailureCreateGattConnection:                "CreateGattConnection",
	PairFailureGattServiceDiscovery:                "GattServiceDiscovery",
	PairFailureGattServiceDiscoveryTimeout:         "GattServiceDiscoveryTimeout",
	PairFailureDataEncryptorRetrieval:              "DataEncryptorRetrieval",
	PairFailureKeyBasedPairingCharacteristicDiscovery:            "KeyBasedPairingCharacteristicDiscovery",
	PairFailurePasskeyCharacteristicDiscovery:                    "PasskeyCharacteristicDiscovery",
	PairFailureAccountKeyCharacteristicDiscovery:                 "AccountKeyCharacteristicDiscovery",
	PairFailureKeyBasedPairingCharacteristicSubscription:         "KeyBasedPairingCharacteristicSubscription",
	PairFailurePasskeyCharacteristicSubscription:                 "PasskeyCharacteristicSubscription",
	PairFailureKeyBasedPairingCharacteristicSubscriptionTimeout:  "KeyBasedPairingCharacteristicSubscriptionTimeout",
	PairFailurePasskeyCharacteristicSubscriptionTimeout:          "PasskeyCharacteristicSubscriptionTimeout",
	PairFailureKeyBasedPairingCharacteristicWrite:                "KeyBasedPairingCharacteristicWrite",
	PairFailurePasskeyCharacteristicWrite:                        "PasskeyCharacteristicWrite",
	PairFailureAccountKeyCharacteristicWrite:                     "AccountKeyCharacteristicWrite",
	PairFailureKeyBasedPairingResponseTimeout:                    "KeyBasedPairingResponseTimeout",
	PairFailurePasskeyResponseTimeout:                            "PasskeyResponseTimeout",
	PairFailureKeyBasedPairingResponseDecrypt:                    "KeyBasedPairingResponseDecrypt",
	PairFailureIncorrectKeyBasedPairingResponseType:              "IncorrectKeyBasedPairingResponseType",
	PairFailurePasskeyDecrypt:                                    "PasskeyDecrypt",
	PairFailureIncorrectPasskeyResponseType:                      "IncorrectPasskeyResponseType",
	PairFailurePasskeyMismatch:                                   "PasskeyMismatch",
	PairFailurePairingDeviceLostBetweenGattConnectionAttempts:    "PairingDeviceLostBetweenGattConnectionAttempts",
	PairFailureDeviceLostMidPairing:                              "DeviceLostMidPairing",
	PairFailurePairingAndConnect:                                 "PairingAndConnect",
	PairFailurePairingTimeout:                                    "PairingTimeout",
	PairFailureWriteAccountKeyToFootprints:                       "WriteAccountKeyToFootprints",
}

func (f PairFailure) String() string {
	if s, ok := pairFailureNames[f]; ok {
		return s
	}
	return "Unknown"
}
