// internal/app/features/rooms/handler.go
package rooms

import (
	"github.com/dalemusser/memedeck/internal/app/game"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for room operations.
// It holds the game service and logger provided by WAFFLE DBDeps / Startup.
type Handler struct {
	Svc     *game.Service
	BaseURL string
	Log     *zap.Logger
}

// NewHandler constructs a rooms Handler. baseURL is the public address of
// this deployment, used to build the join URLs encoded in QR codes.
func NewHandler(svc *game.Service, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:     svc,
		BaseURL: baseURL,
		Log:     logger,
	}
}
