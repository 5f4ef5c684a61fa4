package controllers

import (
	"context"
	"net/http"

	"github.com/lucasrivero/brandforge-backend/api/responses"
	"github.com/lucasrivero/brandforge-backend/pkg/config"
	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrandForge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, docStore, blobStore, cache pinger) http.HandlerFunc {
	checks := []struct {
		name string
		ping pinger
	}{
		{"firestore", docStore},
		{"gcs", blobStore},
		{"redis", cache},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrandForge-Env", cfg.App.Env)

		for _, check := range checks {
			if check.ping == nil {
				continue
			}
			if err := check.ping.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
