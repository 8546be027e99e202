// Package fastpair implements the Fast Pair Seeker role: discovering,
// authenticating, pairing with, and persisting association to nearby
// Bluetooth Low Energy audio accessories using Google's Fast Pair protocol.
//
// STATUS
//
// This package covers the Seeker's core pairing pipeline: advertisement
// decoding, account-key Bloom-filter matching, the ECDH/AES handshake, the
// GATT state machine that drives it, and the classic-pairing + account-key
// commit flow. The platform Bluetooth stack (scanner, GATT client, classic
// pairing agent) and the remote account repository are external
// collaborators; this package defines the Go interfaces they must satisfy.
// The seekertest subpackage ships in-memory fakes of each for testing.
//
// USAGE
//
// A host application wires a GattClient, a ClassicPairing, and a Repository
// into a PairerBroker, then feeds it FastPairDevice records as
// advertisements resolve:
//
//	broker := fastpair.NewPairerBroker(cfg, mediums, classic, repository, signedIn)
//	broker.Observe(myObserverChan)
//	broker.StartPairing(device)
//
// See cmd/fastpairseeker for a complete wiring example.
//
// REFERENCES
//
// This package reimplements, in idiomatic Go, the pairing pipeline found in
// Google's Nearby Connections "fastpair" C++ library
// (https://github.com/google/nearby). The wire formats, retry budgets, and
// state machine transitions follow that specification; none of its code or
// comments are carried over verbatim.
package fastpair
