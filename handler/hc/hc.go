package hc

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/twitchtv/twirp"
)

// Handle reports the build version, uptime and the pools the server can load.
// It fails with unavailable while the banks cannot be read.
func Handle(version string, banks core.IBankStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Get("/", handle(version, banks, time.Now()))
	return r
}

func handle(version string, banks core.IBankStore, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := banks.All(r.Context())
		if err != nil {
			render.Error(w, twirp.NewError(twirp.Unavailable, "banks unavailable"))
			return
		}

		pools := make([]string, 0, len(all))
		for _, bank := range all {
			pools = append(pools, bank.Symbol)
		}

		render.JSON(w, render.H{
			"uptime":  time.Since(started).Truncate(time.Millisecond).String(),
			"version": version,
			"pools":   pools,
		})
	}
}
