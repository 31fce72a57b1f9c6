// internal/app/features/rooms/cards.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/game"
	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeDrawCard handles POST /rooms/{roomID}/members/{userID}/card: one
// replacement card after playing a caption.
func (h *Handler) ServeDrawCard(w http.ResponseWriter, r *http.Request) {
	h.draw(w, r, 1)
}

// ServeDrawHand handles POST /rooms/{roomID}/members/{userID}/cards: a full
// hand's worth in one batch.
func (h *Handler) ServeDrawHand(w http.ResponseWriter, r *http.Request) {
	h.draw(w, r, game.HandSize)
}

func (h *Handler) draw(w http.ResponseWriter, r *http.Request, count int) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Svc.DrawCards(ctx, chi.URLParam(r, "roomID"), chi.URLParam(r, "userID"), count)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}
