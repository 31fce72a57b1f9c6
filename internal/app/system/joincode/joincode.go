// Package joincode generates the short codes players type to find a room.
//
// A code is exactly six alphabetic characters alternating lowercase and
// uppercase, starting lowercase (e.g. "aBcDeF"). Codes are random, not
// derived from the room; the rooms collection enforces uniqueness with an
// index and callers regenerate on a duplicate-key insert.
package joincode

import (
	"crypto/rand"
)

// Length is the fixed code length.
const Length = 6

const letters = "abcdefghijklmnopqrstuvwxyz"

// Generate returns a new join code.
func Generate() string {
	idx := randomIndices(Length)

	code := make([]byte, Length)
	for i, n := range idx {
		c := letters[n]
		if i%2 == 1 {
			c -= 'a' - 'A'
		}
		code[i] = c
	}
	return string(code)
}

// randomIndices returns n uniform values in [0, 26) using rejection sampling,
// so no letter is favored by the modulo.
func randomIndices(n int) []int {
	const max = byte(255 - (256 % 26))

	out := make([]int, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		for _, b := range buf {
			if b <= max {
				out = append(out, int(b)%26)
				if len(out) == n {
					return out
				}
			}
		}
	}
	return out
}
