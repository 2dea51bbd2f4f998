// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	datapoolstore "github.com/tnorman/wayfarer/internal/app/store/datapool"
	"github.com/tnorman/wayfarer/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// datapoolWatcher is started in Startup and closed in Shutdown. Package
// level because hook invocations each receive their own copy of DBDeps.
var datapoolWatcher *datapoolstore.Watcher

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})

	if appCfg.DatapoolWatch {
		w, err := datapoolstore.NewWatcher(context.Background(), deps.Datapool)
		if err != nil {
			return err
		}
		datapoolWatcher = w
	}

	return nil
}
