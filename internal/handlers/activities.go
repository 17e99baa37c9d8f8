package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mergington/activityhub/internal/star"
)

// activityEntry is the activity overview shape: keyed by name, with
// participants listed by email in signup order.
type activityEntry struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func (a *App) Activities() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a.mu.RLock()
		defer a.mu.RUnlock()

		out := make(map[string]activityEntry)
		for _, act := range a.store.Activities() {
			participants := []string{}
			for _, f := range a.store.SignupsByActivity(act.ActivityName) {
				if st, ok := a.store.StudentByID(f.StudentID); ok {
					participants = append(participants, st.Email)
				}
			}
			out[act.ActivityName] = activityEntry{
				Description:     act.Description,
				Schedule:        act.Schedule,
				MaxParticipants: act.MaxParticipants,
				Participants:    participants,
			}
		}
		a.respond(w, http.StatusOK, out)
	}
}

// Signup records a signup at the current instant. The student must exist
// before the activity is even looked at, and capacity is never checked.
func (a *App) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "name")
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			a.detail(w, http.StatusBadRequest, "Email is required")
			return
		}

		a.mu.Lock()
		_, err := a.store.AddSignup(email, name)
		a.mu.Unlock()

		switch {
		case errors.Is(err, star.ErrStudentNotFound):
			a.detail(w, http.StatusNotFound, "Student not found")
		case errors.Is(err, star.ErrActivityNotFound):
			a.detail(w, http.StatusNotFound, "Activity not found")
		case err != nil:
			a.detail(w, http.StatusInternalServerError, "Could not record signup")
		default:
			a.log.WithFields(logrus.Fields{
				"email":    email,
				"activity": name,
			}).Info("signup recorded")
			a.respond(w, http.StatusOK, map[string]string{
				"message": fmt.Sprintf("Signed up %s for %s", email, name),
			})
		}
	}
}

// ActivityQR renders a QR code for posters that opens the activity's
// detail endpoint when scanned.
func (a *App) ActivityQR() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "name")

		a.mu.RLock()
		act, ok := a.store.ActivityByName(name)
		a.mu.RUnlock()
		if !ok {
			a.detail(w, http.StatusNotFound, "Activity not found")
			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		target := scheme + "://" + r.Host + "/star-schema/activity/" + url.PathEscape(act.ActivityName)

		png, err := qrcode.Encode(target, qrcode.Medium, 256)
		if err != nil {
			a.detail(w, http.StatusInternalServerError, "Could not generate QR code")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
