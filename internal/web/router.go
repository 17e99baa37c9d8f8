package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/mergington/activityhub/internal/handlers"
)

func Router(app *handlers.App, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/", app.Index())

	// Activity overview, signups, poster QR
	r.Get("/activities", app.Activities())
	r.Post("/activities/{name}/signup", app.Signup())
	r.Get("/activities/{name}/qr.png", app.ActivityQR())

	// Star schema: analytics, raw tables, detail views, ingestion
	r.Route("/star-schema", func(sr chi.Router) {
		sr.Get("/analytics/activities", app.AnalyticsActivities())
		sr.Get("/analytics/students", app.AnalyticsStudents())
		sr.Get("/analytics/grades", app.AnalyticsGrades())

		sr.Get("/dimensions/students", app.DimStudents())
		sr.Get("/dimensions/activities", app.DimActivities())
		sr.Get("/dimensions/dates", app.DimDates())
		sr.Get("/facts/signups", app.FactSignups())

		sr.Get("/student/{email}", app.StudentDetail())
		sr.Get("/activity/{name}", app.ActivityDetail())

		sr.Post("/load-excel", app.LoadExcel())
	})

	return r
}

// requestLogger logs one line per request, tagged with chi's request id.
func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request")
		})
	}
}
