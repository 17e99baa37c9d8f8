package handlers

import (
	"net/http"

	"github.com/mergington/activityhub/internal/star"
)

// studentSignupRow is one fact enriched for the student detail view.
type studentSignupRow struct {
	ActivityName    string `json:"activity_name"`
	SignupDate      string `json:"signup_date"`
	SignupTimestamp string `json:"signup_timestamp"`
}

type studentDetailVM struct {
	Student star.Student       `json:"student"`
	Signups []studentSignupRow `json:"signups"`
}

// activitySignupRow is one fact enriched for the activity detail view.
type activitySignupRow struct {
	StudentName     string `json:"student_name"`
	StudentEmail    string `json:"student_email"`
	GradeLevel      int    `json:"grade_level"`
	SignupDate      string `json:"signup_date"`
	SignupTimestamp string `json:"signup_timestamp"`
}

type activityDetailVM struct {
	Activity     star.Activity       `json:"activity"`
	Signups      []activitySignupRow `json:"signups"`
	TotalSignups int                 `json:"total_signups"`
	SpotsLeft    int                 `json:"spots_left"`
}

func (a *App) StudentDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := pathParam(r, "email")

		a.mu.RLock()
		defer a.mu.RUnlock()

		student, ok := a.store.StudentByEmail(email)
		if !ok {
			a.detail(w, http.StatusNotFound, "Student not found")
			return
		}

		facts := a.store.SignupsByStudent(email)
		rows := make([]studentSignupRow, 0, len(facts))
		for _, f := range facts {
			act, _ := a.store.ActivityByID(f.ActivityID)
			d, _ := a.store.DateByID(f.DateID)
			rows = append(rows, studentSignupRow{
				ActivityName:    act.ActivityName,
				SignupDate:      d.Date,
				SignupTimestamp: f.SignupTimestamp,
			})
		}

		a.respond(w, http.StatusOK, studentDetailVM{Student: student, Signups: rows})
	}
}

func (a *App) ActivityDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "name")

		a.mu.RLock()
		defer a.mu.RUnlock()

		activity, ok := a.store.ActivityByName(name)
		if !ok {
			a.detail(w, http.StatusNotFound, "Activity not found")
			return
		}

		facts := a.store.SignupsByActivity(name)
		rows := make([]activitySignupRow, 0, len(facts))
		for _, f := range facts {
			student, _ := a.store.StudentByID(f.StudentID)
			d, _ := a.store.DateByID(f.DateID)
			rows = append(rows, activitySignupRow{
				StudentName:     student.Name,
				StudentEmail:    student.Email,
				GradeLevel:      student.GradeLevel,
				SignupDate:      d.Date,
				SignupTimestamp: f.SignupTimestamp,
			})
		}

		a.respond(w, http.StatusOK, activityDetailVM{
			Activity:     activity,
			Signups:      rows,
			TotalSignups: len(rows),
			SpotsLeft:    activity.MaxParticipants - len(rows),
		})
	}
}
