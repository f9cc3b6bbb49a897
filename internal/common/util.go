// Package common also provides small utility helpers shared by both
// components: random string generation used for share links and refresh
// tokens.
package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string. As a result, the final string length
// will be twice the size (since each byte expands to two hex characters).
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system RNG fails, which is unrecoverable anyway.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes the buffer in place. Callers use it to scrub
// passwords once they are no longer needed. Safe on nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
