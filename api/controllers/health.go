package controllers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/erp-records-backend/api/responses"
	"github.com/angelmondragon/erp-records-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
)

const (
	envHeader          = "X-ERP-Env"
	readyCheckTimeout  = 3 * time.Second
	readyCheckDatabase = "database"
	readyCheckRedis    = "redis"
)

// Pinger is satisfied by the database and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis concurrently and fails when either is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]Pinger{
			readyCheckDatabase: dbP,
			readyCheckRedis:    redisP,
		}

		g, gctx := errgroup.WithContext(ctx)
		for name, p := range checks {
			g.Go(func() error {
				if p == nil {
					return pkgerrors.New(pkgerrors.CodeDependency, name+" not configured").
						WithDetails(map[string]any{"check": name})
				}
				if err := p.Ping(gctx); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable").
						WithDetails(map[string]any{"check": name})
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
