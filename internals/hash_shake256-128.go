package internals

import (
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/sha3"
)

// SHAKE256_128 implements the SHAKE hash algorithm with 128bit output
type SHAKE256_128 struct {
	h sha3.ShakeHash
}

// NewSHAKE256_128 returns a properly initialized SHAKE256-128 instance
func NewSHAKE256_128() *SHAKE256_128 {
	c := new(SHAKE256_128)
	c.h = sha3.NewShake256()
	return c
}

// Size returns the number of bytes of the hashsum
func (c *SHAKE256_128) Size() int {
	return 16
}

// ReadFile provides an interface to update the hash state with the content of an entire file
func (c *SHAKE256_128) ReadFile(filepath string) error {
	// open/close file
	fd, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer fd.Close()

	// read file
	_, err = io.Copy(c.h, fd)
	if err != nil {
		return err
	}

	return nil
}

// ReadBytes provides an interface to update the hash state with individual bytes
func (c *SHAKE256_128) ReadBytes(data []byte) error {
	_, err := c.h.Write(data)
	return err
}

// Reset resets the hash state to its initial state.
// After this call functions like `ReadFile` or `ReadBytes` can be called.
func (c *SHAKE256_128) Reset() {
	c.h.Reset()
}

// Digest returns the digest resulting from the hash state.
// The sponge is squeezed on a clone, so the hash state stays writable.
func (c *SHAKE256_128) Digest() []byte {
	var buf [16]byte
	c.h.Clone().Read(buf[:])
	return buf[:]
}

// HexDigest returns the hash state digest encoded in a hexadecimal string
func (c *SHAKE256_128) HexDigest() string {
	return hex.EncodeToString(c.Digest())
}

// Name returns the hash algorithm's name
func (c *SHAKE256_128) Name() string {
	return string(HashSHAKE256_128)
}
