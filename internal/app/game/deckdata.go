// internal/app/game/deckdata.go
package game

import (
	"embed"
	"encoding/json"
	"sync"
)

//go:embed captions.json
var deckFS embed.FS

var (
	defaultCaptions []string
	captionsOnce    sync.Once
)

// DefaultCaptions returns the caption texts every new room starts with.
// The pool is embedded at build time and loaded once.
func DefaultCaptions() []string {
	captionsOnce.Do(func() {
		data, err := deckFS.ReadFile("captions.json")
		if err != nil {
			panic("game: embedded captions.json unreadable: " + err.Error())
		}
		if err := json.Unmarshal(data, &defaultCaptions); err != nil {
			panic("game: embedded captions.json malformed: " + err.Error())
		}
	})

	out := make([]string, len(defaultCaptions))
	copy(out, defaultCaptions)
	return out
}
