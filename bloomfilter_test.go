package fastpair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountKeyFilter_SingleAccountKey(t *testing.T) {
	salt := []byte{0xC7, 0xC8}
	accountKey1 := AccountKey{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	accountKey2 := AccountKey{0x11, 0x11, 0x22, 0x22, 0x33, 0x33, 0x44, 0x44, 0x55, 0x55, 0x66, 0x66, 0x77, 0x77, 0x88, 0x88}
	filter1 := []byte{0x02, 0x0C, 0x80, 0x2A}

	f := AccountKeyFilter{bits: filter1, salt: salt}
	assert.True(t, f.IsPossiblyInSet(accountKey1))
	assert.False(t, f.IsPossiblyInSet(accountKey2))
}

func TestAccountKeyFilter_MultipleAccountKeys(t *testing.T) {
	salt := []byte{0xC7, 0xC8}
	accountKey1 := AccountKey{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	accountKey2 := AccountKey{0x11, 0x11, 0x22, 0x22, 0x33, 0x33, 0x44, 0x44, 0x55, 0x55, 0x66, 0x66, 0x77, 0x77, 0x88, 0x88}
	filter1And2 := []byte{0x84, 0x4A, 0x62, 0x20, 0x8B}

	f := AccountKeyFilter{bits: filter1And2, salt: salt}
	assert.True(t, f.IsPossiblyInSet(accountKey1))
	assert.True(t, f.IsPossiblyInSet(accountKey2))
}

func TestAccountKeyFilter_Empty(t *testing.T) {
	accountKey1 := AccountKey{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	f := AccountKeyFilter{}
	assert.False(t, f.IsPossiblyInSet(accountKey1))
}

func TestAccountKeyFilter_EmptyAccountKey(t *testing.T) {
	filter1 := []byte{0x02, 0x0C, 0x80, 0x2A}
	f := AccountKeyFilter{bits: filter1, salt: []byte{0xC7, 0xC8}}
	assert.False(t, f.IsPossiblyInSet(AccountKey{}))
}

func TestAccountKeyFilter_WithBattery(t *testing.T) {
	salt := []byte{0xC7, 0xC8}
	accountKey1 := AccountKey{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	filter1WithBattery := []byte{0x01, 0x01, 0x46, 0x0A}

	adv := NonDiscoverableAdvertisement{
		ShowUI:               true,
		AccountKeyFilterBits: filter1WithBattery,
		Salt:                 salt,
	}
	bn, err := BatteryNotificationFromBytes([]byte{0b01000000, 0b01000000, 0b01000000}, BatteryNotificationShowUI)
	if err != nil {
		t.Fatal(err)
	}
	adv.Battery = &bn

	f := NewAccountKeyFilter(adv)
	assert.True(t, f.IsPossiblyInSet(accountKey1))
}

func TestBloomFilterTest_Deterministic(t *testing.T) {
	bits := []byte{0x02, 0x0C, 0x80, 0x2A}
	data := append([]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, 0xC7, 0xC8)
	assert.True(t, bloomFilterTest(data, bits))
	assert.True(t, bloomFilterTest(data, bits), "repeated calls with the same input must agree")
}
