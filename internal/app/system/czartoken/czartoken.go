// Package czartoken issues and compares the bearer secret that proves
// scoring authority for a room.
//
// A token is 32 bytes from crypto/rand rendered as 64 hex characters, so it
// carries 256 bits of entropy. A fresh token is issued at room creation and
// on every czar rotation; the stored record is overwritten each time, which
// is what invalidates the previous token.
package czartoken

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

const tokenBytes = 32

// Issue returns a new opaque token.
func Issue() string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Equal reports whether the presented token matches the stored one, in time
// independent of where the strings differ.
func Equal(stored, presented string) bool {
	if len(stored) != len(presented) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
