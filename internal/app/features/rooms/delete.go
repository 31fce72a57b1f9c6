// internal/app/features/rooms/delete.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeDelete handles DELETE /rooms/{roomID}. The room's credential record
// goes with it.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Svc.DeleteRoom(ctx, chi.URLParam(r, "roomID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
