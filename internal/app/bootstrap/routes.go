// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/memedeck/internal/app/features/health"
	roomsfeature "github.com/dalemusser/memedeck/internal/app/features/rooms"
	"github.com/dalemusser/memedeck/internal/app/game"
	"github.com/dalemusser/memedeck/internal/app/system/promptimg"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// MemeDeck wires the prompt image client and the game service, then mounts
// the health and rooms feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	prompts := promptimg.New(appCfg.MemeAPIURL, appCfg.MemeFetchTimeout, logger)
	svc := game.NewService(deps.MemeDeckMongoDatabase, prompts, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MemeDeckMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Game API
	roomsHandler := roomsfeature.NewHandler(svc, appCfg.BaseURL, logger)
	r.Mount("/rooms", roomsfeature.Routes(roomsHandler))

	return r, nil
}
