// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	czarcredstore "github.com/dalemusser/memedeck/internal/app/store/czarcreds"
	roomstore "github.com/dalemusser/memedeck/internal/app/store/rooms"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes both collections rely on. The unique
// join-code index in particular must exist before the first room is
// created, because room creation leans on it for collision detection.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MemeDeckMongoDatabase

	if err := roomstore.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("room indexes failed", zap.Error(err))
		return err
	}
	if err := czarcredstore.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("czar credential indexes failed", zap.Error(err))
		return err
	}

	logger.Info("database indexes ensured")
	return nil
}
