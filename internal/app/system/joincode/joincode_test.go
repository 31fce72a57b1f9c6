package joincode_test

import (
	"testing"

	"github.com/dalemusser/memedeck/internal/app/system/joincode"
)

func TestGenerate_Format(t *testing.T) {
	for i := 0; i < 500; i++ {
		code := joincode.Generate()

		if len(code) != joincode.Length {
			t.Fatalf("code %q has length %d, want %d", code, len(code), joincode.Length)
		}
		for pos, c := range code {
			switch {
			case pos%2 == 0 && (c < 'a' || c > 'z'):
				t.Fatalf("code %q: position %d should be lowercase", code, pos)
			case pos%2 == 1 && (c < 'A' || c > 'Z'):
				t.Fatalf("code %q: position %d should be uppercase", code, pos)
			}
		}
	}
}

func TestGenerate_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[joincode.Generate()] = true
	}
	// 26^6 possibilities; 100 draws colliding down to a handful would mean
	// the generator is broken.
	if len(seen) < 95 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}
