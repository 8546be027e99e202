package fastpair

const (
	sassRecentlyUsedByte byte = 0x05
	sassInUseByte        byte = 0x06
	batteryShowUIHeader  byte = 0b00110011
	batteryHideUIHeader  byte = 0b00110100
)

// AccountKeyFilter wraps a non-discoverable advertisement's Bloom filter
// bytes and reconstructs the salt stream it was built with, including the
// battery extension.
type AccountKeyFilter struct {
	bits []byte
	salt []byte
}

// NewAccountKeyFilter assembles a filter from a parsed non-discoverable
// advertisement. When the advertisement carries battery information, the
// battery header byte and each battery value byte are appended to the
// salt stream, matching how the provider built the filter.
func NewAccountKeyFilter(adv NonDiscoverableAdvertisement) AccountKeyFilter {
	salt := make([]byte, len(adv.Salt))
	copy(salt, adv.Salt)

	if adv.Battery != nil {
		header := batteryHideUIHeader
		if adv.Battery.Type == BatteryNotificationShowUI {
			header = batteryShowUIHeader
		}
		salt = append(salt, header)
		for _, b := range adv.Battery.Batteries {
			salt = append(salt, b.ToByte())
		}
	}

	return AccountKeyFilter{bits: adv.AccountKeyFilterBits, salt: salt}
}

// IsPossiblyInSet reports whether key may have produced this filter. It
// also accepts the SASS "recently used" and "in use" first-byte
// substitutions, trying the plain key first and returning on the first
// match.
func (f AccountKeyFilter) IsPossiblyInSet(key AccountKey) bool {
	if !key.Ok() || len(f.bits) == 0 {
		return false
	}

	data := make([]byte, 0, len(key)+len(f.salt))
	data = append(data, key[:]...)
	data = append(data, f.salt...)

	if bloomFilterTest(data, f.bits) {
		return true
	}

	data[0] = sassRecentlyUsedByte
	if bloomFilterTest(data, f.bits) {
		return true
	}

	data[0] = sassInUseByte
	return bloomFilterTest(data, f.bits)
}
