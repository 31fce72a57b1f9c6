// internal/app/features/rooms/qr.go
package rooms

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/memedeck/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// ServeQR handles GET /rooms/{roomID}/qr: a PNG QR code of the room's join
// URL, sized for phone screens. An optional size query parameter picks the
// pixel edge, clamped to something sane.
func (h *Handler) ServeQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	room, err := h.Svc.GetRoom(ctx, chi.URLParam(r, "roomID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	size := defaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			size = n
		}
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	joinURL := fmt.Sprintf("%s/rooms/code/%s", h.BaseURL, room.JoinCode)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, size)
	if err != nil {
		h.Log.Error("qr encode failed",
			zap.String("room_id", room.ID.Hex()),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}
