// internal/app/features/rooms/list.go
package rooms

import (
	"context"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /rooms.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Svc.ListRooms(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	views := make([]roomView, 0, len(list))
	for _, room := range list {
		views = append(views, viewOf(room))
	}
	writeJSON(w, http.StatusOK, views)
}

// ServeGet handles GET /rooms/{roomID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	room, err := h.Svc.GetRoom(ctx, chi.URLParam(r, "roomID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}

// ServeGetByCode handles GET /rooms/code/{joinCode}, the lookup players use
// after typing in a short code.
func (h *Handler) ServeGetByCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	room, err := h.Svc.GetRoomByJoinCode(ctx, chi.URLParam(r, "joinCode"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(room))
}
