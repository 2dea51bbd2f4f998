// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if datapoolWatcher != nil {
		logger.Info("stopping datapool watcher")
		if err := datapoolWatcher.Close(); err != nil {
			logger.Warn("datapool watcher close failed", zap.Error(err))
		}
		datapoolWatcher = nil
	}

	if deps.Datapool != nil {
		// Let any in-flight flushes reach disk before the process exits.
		deps.Datapool.Sync()
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
