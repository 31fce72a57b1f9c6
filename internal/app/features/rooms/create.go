// internal/app/features/rooms/create.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/sanitize"
	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
)

// ServeCreate handles POST /rooms. The creator becomes the first czar and
// the response is the only time their scoring token is sent over the wire.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	room, cred, err := h.Svc.CreateRoom(ctx,
		req.CzarID,
		sanitize.Text(req.CzarName),
		sanitize.Text(req.Title))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, credentialView{
		Room:      viewOf(room),
		CzarToken: cred.Token,
		IssuedAt:  cred.IssuedAt,
	})
}
