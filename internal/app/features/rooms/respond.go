// internal/app/features/rooms/respond.go
package rooms

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/memedeck/internal/app/game"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; the largest legitimate body is a
// caption submission, far under a kilobyte.
const maxBodyBytes = 16 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody parses a JSON request body into dst. A failure here is always
// the client's fault, so callers translate it straight to a 400.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeError maps service errors to HTTP statuses. Rule violations (wrong
// actor, card not held, racing writers) are conflicts; identity and lookup
// failures keep their usual codes. Anything unmapped is a 500 and gets
// logged, because it means a bug rather than bad input.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, game.ErrRoomNotFound),
		errors.Is(err, game.ErrMemberNotFound),
		errors.Is(err, game.ErrCaptionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrMemberExists),
		errors.Is(err, game.ErrCzarCannotSubmit),
		errors.Is(err, game.ErrCaptionNotInHand),
		errors.Is(err, game.ErrSelfScoreForbidden),
		errors.Is(err, game.ErrCzarRemovalForbidden),
		errors.Is(err, game.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, game.ErrPromptUnavailable):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		h.Log.Error("room request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
