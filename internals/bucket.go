package internals

// FNV constants, see http://isthe.com/chongo/tech/comp/fnv/
const (
	fnvOffsetBasis uint64 = 0xcbf29ce484222325
	fnvPrime       uint64 = 0x100000001b3
)

// BucketHash computes a fast non-cryptographic 64 bit hash of the given data:
// starting from the FNV offset basis, every byte is XORed into the
// accumulator which is then multiplied by the FNV prime. It is used solely
// to select a table bucket and is never part of a user-visible identity.
func BucketHash(data []byte) uint64 {
	hash := fnvOffsetBasis
	for _, b := range data {
		hash = hash ^ uint64(b)
		hash = hash * fnvPrime
	}
	return hash
}

// BucketHashString is BucketHash over the bytes of a string
func BucketHashString(key string) uint64 {
	hash := fnvOffsetBasis
	for i := 0; i < len(key); i++ {
		hash = hash ^ uint64(key[i])
		hash = hash * fnvPrime
	}
	return hash
}
