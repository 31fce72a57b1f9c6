// internal/app/features/rooms/members.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/sanitize"
	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeJoin handles POST /rooms/{roomID}/members. The new member arrives
// with a full starting hand drawn from the room's pool.
func (h *Handler) ServeJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// User ids are opaque external identifiers matched byte for byte across
	// join, draw, and remove; only display text gets scrubbed.
	room, err := h.Svc.JoinRoom(ctx, chi.URLParam(r, "roomID"),
		req.UserID,
		sanitize.Text(req.DisplayName))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(room))
}

// ServeRemoveMember handles DELETE /rooms/{roomID}/members/{userID}. The
// sitting czar cannot be removed; rotate first.
func (h *Handler) ServeRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Svc.RemoveMember(ctx, chi.URLParam(r, "roomID"), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}
