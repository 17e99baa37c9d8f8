// Package handlers implements the JSON API over the star schema store.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mergington/activityhub/internal/ingest"
	"github.com/mergington/activityhub/internal/star"
)

// App bundles the store with everything the handlers need. The store does
// not lock, so App serializes access here: reads take RLock, signups and
// uploads take the write lock.
type App struct {
	mu             sync.RWMutex
	store          *star.Store
	loader         *ingest.Loader
	log            *logrus.Logger
	maxUploadBytes int64
}

func NewApp(st *star.Store, log *logrus.Logger, maxUploadBytes int64) *App {
	return &App{
		store:          st,
		loader:         ingest.NewLoader(st),
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

func (a *App) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.WithError(err).Error("encode response")
	}
}

// detail writes the {"detail": ...} error shape used across the API.
func (a *App) detail(w http.ResponseWriter, status int, msg string) {
	a.respond(w, status, map[string]string{"detail": msg})
}

// pathParam returns a chi URL parameter with percent-escapes decoded, so
// "/star-schema/activity/Chess%20Club" resolves the activity "Chess Club".
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

// Index lists the endpoints the service exposes.
func (a *App) Index() http.HandlerFunc {
	payload := map[string]any{
		"service": "Mergington High School Activities API",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /activities",
			"POST /activities/{name}/signup?email=...",
			"GET /activities/{name}/qr.png",
			"GET /star-schema/analytics/activities",
			"GET /star-schema/analytics/students",
			"GET /star-schema/analytics/grades",
			"GET /star-schema/dimensions/students",
			"GET /star-schema/dimensions/activities",
			"GET /star-schema/dimensions/dates",
			"GET /star-schema/facts/signups",
			"GET /star-schema/student/{email}",
			"GET /star-schema/activity/{name}",
			"POST /star-schema/load-excel",
		},
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		a.respond(w, http.StatusOK, payload)
	}
}
