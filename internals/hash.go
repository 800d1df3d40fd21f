package internals

import (
	"fmt"
	"strings"
)

// HashAlgo is an alias for string, but specifically can only
// be one of the identifiers for fingerprint algorithms.
type HashAlgo string

const (
	HashMD5          HashAlgo = `md5`
	HashFNV1_128     HashAlgo = `fnv-1-128`
	HashSHAKE256_128 HashAlgo = `shake256-128`
)

// DefaultHash is the fingerprint algorithm used when the user specifies none
const DefaultHash HashAlgo = HashMD5

// SupportedHashAlgorithms returns the list of supported fingerprint algorithms.
// Every algorithm emits a 128 bit digest, i.e. fingerprints are always
// 32 hexadecimal characters long.
func SupportedHashAlgorithms() []string {
	return []string{
		string(HashMD5),
		string(HashFNV1_128),
		string(HashSHAKE256_128),
	}
}

// DigestSize returns the output size in bytes for a given fingerprint algorithm.
func (h HashAlgo) DigestSize() int {
	switch h {
	case HashMD5:
		return 16
	case HashFNV1_128:
		return 16
	case HashSHAKE256_128:
		return 16
	}
	return 0
}

// Algorithm returns a Hash instance for the given fingerprint algorithm name.
func (h HashAlgo) Algorithm() Hash {
	switch h {
	case HashMD5:
		return NewMD5()
	case HashFNV1_128:
		return NewFNV1_128()
	case HashSHAKE256_128:
		return NewSHAKE256_128()
	}
	return DefaultHash.Algorithm()
}

// HashAlgorithmFromString returns a HashAlgo instance, given the fingerprint algorithm's name as a string
func HashAlgorithmFromString(name string) (HashAlgo, error) {
	name = strings.ToLower(name)
	for _, algo := range SupportedHashAlgorithms() {
		if name == algo {
			return HashAlgo(algo), nil
		}
	}
	return DefaultHash, fmt.Errorf(`unknown hash algorithm %q`, name)
}

// Hash is a custom interface to define operations
// a fingerprint algorithm needs to support to include it in dupscan
type Hash interface {
	// returns number of bytes of the digest
	Size() int
	// update hash state with data of file at given filepath
	ReadFile(string) error
	// update hash state with given bytes
	ReadBytes([]byte) error
	// reset hash state
	Reset()
	// get hash state digest
	Digest() []byte
	// get hash state digest represented as hexadecimal string
	HexDigest() string
	// get string representation of this hash algorithm
	Name() string
}

// Fingerprint computes the content fingerprint of the file at the given filepath.
// It resets the hash state, streams the entire file content through it and
// returns the digest as 32 lowercase hexadecimal characters. If the file
// cannot be read, the error is returned and the result must not be used.
func Fingerprint(hash Hash, filepath string) (string, error) {
	hash.Reset()
	if err := hash.ReadFile(filepath); err != nil {
		return "", err
	}
	return hash.HexDigest(), nil
}
