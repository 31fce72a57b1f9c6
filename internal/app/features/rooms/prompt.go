// internal/app/features/rooms/prompt.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeRefreshPrompt handles PATCH /rooms/{roomID}/prompt. A provider outage
// returns 502 and leaves the current prompt in place.
func (h *Handler) ServeRefreshPrompt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	room, err := h.Svc.RefreshPrompt(ctx, chi.URLParam(r, "roomID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}
