// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authcheckfeature "github.com/tnorman/wayfarer/internal/app/features/authcheck"
	datapoolfeature "github.com/tnorman/wayfarer/internal/app/features/datapool"
	healthfeature "github.com/tnorman/wayfarer/internal/app/features/health"
	homefeature "github.com/tnorman/wayfarer/internal/app/features/home"
	stepsfeature "github.com/tnorman/wayfarer/internal/app/features/steps"
	subjectsfeature "github.com/tnorman/wayfarer/internal/app/features/subjects"
	usersfeature "github.com/tnorman/wayfarer/internal/app/features/users"
	subjectstore "github.com/tnorman/wayfarer/internal/app/store/subjects"
	userstore "github.com/tnorman/wayfarer/internal/app/store/users"
	"github.com/tnorman/wayfarer/internal/app/system/auth"
	"github.com/tnorman/wayfarer/internal/app/system/password"
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
// Wayfarer attaches the basic-auth gate globally: it resolves credentials
// when they are present but never rejects on its own, so the open endpoints
// (registration, the {id} admin surface, /datapool, /steps) keep working
// without an Authorization header. Routes that need a caller add
// auth.RequireUser in their feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase, logger)
	subjects := subjectstore.New(deps.MongoDatabase)

	gate := auth.NewGate(users, password.Verify, logger)

	r := chi.NewRouter()
	r.Use(gate.LoadBasicAuthUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	authcheckHandler := authcheckfeature.NewHandler(logger)
	r.Mount("/authenticate", authcheckfeature.Routes(authcheckHandler))

	subjectsHandler := subjectsfeature.NewHandler(subjects, deps.Datapool, logger)
	r.Mount("/subjects", subjectsfeature.Routes(subjectsHandler))

	datapoolHandler := datapoolfeature.NewHandler(deps.Datapool, logger)
	r.Mount("/datapool", datapoolfeature.Routes(datapoolHandler))

	stepsHandler := stepsfeature.NewHandler(logger)
	r.Mount("/steps", stepsfeature.Routes(stepsHandler))

	return r, nil
}
