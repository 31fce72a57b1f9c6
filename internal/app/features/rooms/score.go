// internal/app/features/rooms/score.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeScore handles POST /rooms/{roomID}/score. The czar picks the round's
// winner by caption id, proving identity with the X-Czar-Token header.
func (h *Handler) ServeScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Svc.ScoreCaption(ctx, chi.URLParam(r, "roomID"),
		req.CzarID,
		r.Header.Get("X-Czar-Token"),
		req.CaptionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}
