package handlers

import "net/http"

// ---------- dimension and fact dumps ----------

func (a *App) DimStudents() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.Students())
	}
}

func (a *App) DimActivities() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.Activities())
	}
}

func (a *App) DimDates() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.Dates())
	}
}

func (a *App) FactSignups() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.Signups())
	}
}

// ---------- analytics ----------

func (a *App) AnalyticsActivities() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.ActivityAnalytics())
	}
}

func (a *App) AnalyticsStudents() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.StudentAnalytics())
	}
}

func (a *App) AnalyticsGrades() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		a.respond(w, http.StatusOK, a.store.GradeAnalytics())
	}
}
