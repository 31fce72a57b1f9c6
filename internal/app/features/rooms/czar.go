// internal/app/features/rooms/czar.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeRotateCzar handles PATCH /rooms/{roomID}/czar. The next member in
// roster order takes over and gets a brand new token; every token issued
// before this call stops working.
func (h *Handler) ServeRotateCzar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	room, cred, err := h.Svc.RotateCzar(ctx, chi.URLParam(r, "roomID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialView{
		Room:      viewOf(room),
		CzarToken: cred.Token,
		IssuedAt:  cred.IssuedAt,
	})
}
