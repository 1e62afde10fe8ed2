package controllers

import (
	"net/http"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/pkg/config"
	"github.com/auraluxe/auraluxe-backend/pkg/db"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
	"github.com/auraluxe/auraluxe-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Auraluxe-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the datastore dependencies and reports per-component
// status. Any failing dependency fails the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Auraluxe-Env", cfg.App.Env)

		ctx := r.Context()
		components := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				components["database"] = "unreachable"
				healthy = false
			} else {
				components["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				components["redis"] = "unreachable"
				healthy = false
			} else {
				components["redis"] = "ok"
			}
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(components))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "components": components})
	}
}
