package hashtable

import "unicode/utf16"

const djb2Seed uint32 = 5381

// Hash maps key to a bucket index in [0, capacity) using djb2 with 32-bit
// unsigned wraparound over the key's UTF-16 code units.
// capacity must be in (0, math.MaxUint32].
func Hash(key string, capacity int) int {
	h := djb2Seed
	for _, r := range key {
		if r < 0x10000 {
			h = (h << 5) + h + uint32(r)
			continue
		}
		hi, lo := utf16.EncodeRune(r)
		h = (h << 5) + h + uint32(hi)
		h = (h << 5) + h + uint32(lo)
	}
	return int(h % uint32(capacity))
}
