// internal/app/features/rooms/captions.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/sanitize"
	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeSubmitCaption handles POST /rooms/{roomID}/captions. The caption must
// already be in the member's hand; the czar sits this one out.
func (h *Handler) ServeSubmitCaption(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Svc.SubmitCaption(ctx, chi.URLParam(r, "roomID"),
		req.UserID,
		sanitize.Text(req.Caption))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(room))
}

// ServeClearCaptions handles DELETE /rooms/{roomID}/captions: the czar
// abandons the round without awarding a point. Identity comes from the
// czarId query parameter, the token from X-Czar-Token.
func (h *Handler) ServeClearCaptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Svc.ClearCaptions(ctx, chi.URLParam(r, "roomID"),
		r.URL.Query().Get("czarId"),
		r.Header.Get("X-Czar-Token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}
