package controllers

import (
	"net/http"

	"github.com/rainadr/kasirkopi-backend/api/responses"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	dbpkg "github.com/rainadr/kasirkopi-backend/pkg/db"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	redispkg "github.com/rainadr/kasirkopi-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-KasirKopi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when both backing stores answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, db dbpkg.Pinger, redis redispkg.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-KasirKopi-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if db == nil {
			checks["db"] = "not configured"
			healthy = false
		} else if err := db.Ping(r.Context()); err != nil {
			checks["db"] = err.Error()
			healthy = false
		}

		if redis == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := redis.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
