// Package star implements the in-memory star schema behind the signup
// service: three dimension tables (students, activities, dates), one fact
// table (signups), and the natural-key indexes used to deduplicate them.
package star

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStudentNotFound  = errors.New("student not found in dimension table")
	ErrActivityNotFound = errors.New("activity not found in dimension table")
)

// DayKey is the layout of the date dimension's natural key.
const DayKey = "2006-01-02"

type Student struct {
	StudentID  int    `json:"student_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GradeLevel int    `json:"grade_level"`
}

type Activity struct {
	ActivityID      int    `json:"activity_id"`
	ActivityName    string `json:"activity_name"`
	Description     string `json:"description"`
	Schedule        string `json:"schedule"`
	MaxParticipants int    `json:"max_participants"`
}

type Date struct {
	DateID  int    `json:"date_id"`
	Date    string `json:"date"` // YYYY-MM-DD
	Day     int    `json:"day"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Weekday string `json:"weekday"` // full name, e.g. "Monday"
}

type Signup struct {
	FactSignupID    int    `json:"fact_signup_id"`
	StudentID       int    `json:"student_id"`
	ActivityID      int    `json:"activity_id"`
	DateID          int    `json:"date_id"`
	SignupTimestamp string `json:"signup_timestamp"` // RFC 3339
}

// Store holds the dimension and fact tables. Rows are immutable once
// inserted and never deleted, so surrogate keys are dense, start at 1,
// and match insertion order.
//
// NOTE: the store does NOT lock. A single goroutine may use it directly;
// anything shared (the HTTP layer) must serialize access itself.
type Store struct {
	students   []Student
	activities []Activity
	dates      []Date
	signups    []Signup

	studentByEmail map[string]int
	activityByName map[string]int
	dateByDay      map[string]int

	now func() time.Time
}

func New() *Store {
	return &Store{
		studentByEmail: make(map[string]int),
		activityByName: make(map[string]int),
		dateByDay:      make(map[string]int),
		now:            time.Now,
	}
}

// AddStudent inserts a student row and returns its surrogate key. Emails
// are the natural key (case-sensitive): adding an email twice returns the
// first row's key and discards the new name and grade.
func (s *Store) AddStudent(email, name string, gradeLevel int) int {
	if id, ok := s.studentByEmail[email]; ok {
		return id
	}
	id := len(s.students) + 1
	s.students = append(s.students, Student{
		StudentID:  id,
		Email:      email,
		Name:       name,
		GradeLevel: gradeLevel,
	})
	s.studentByEmail[email] = id
	return id
}

// AddActivity inserts an activity row and returns its surrogate key.
// Activity names are the natural key; duplicates behave like AddStudent.
func (s *Store) AddActivity(name, description, schedule string, maxParticipants int) int {
	if id, ok := s.activityByName[name]; ok {
		return id
	}
	id := len(s.activities) + 1
	s.activities = append(s.activities, Activity{
		ActivityID:      id,
		ActivityName:    name,
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
	})
	s.activityByName[name] = id
	return id
}

// AddDate inserts a date row keyed by calendar day (in t's location) and
// returns its surrogate key. The same day always maps to one row.
func (s *Store) AddDate(t time.Time) int {
	day := t.Format(DayKey)
	if id, ok := s.dateByDay[day]; ok {
		return id
	}
	id := len(s.dates) + 1
	s.dates = append(s.dates, Date{
		DateID:  id,
		Date:    day,
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year(),
		Weekday: t.Weekday().String(),
	})
	s.dateByDay[day] = id
	return id
}

// AddSignup records a signup fact at the current instant.
func (s *Store) AddSignup(studentEmail, activityName string) (int, error) {
	return s.AddSignupAt(studentEmail, activityName, time.Time{})
}

// AddSignupAt records a signup fact at the given instant; a zero instant
// means now. The student and the activity must already exist (checked in
// that order), while the date row is created on demand. On failure the
// store is left exactly as it was.
func (s *Store) AddSignupAt(studentEmail, activityName string, at time.Time) (int, error) {
	studentID, ok := s.studentByEmail[studentEmail]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrStudentNotFound, studentEmail)
	}
	activityID, ok := s.activityByName[activityName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrActivityNotFound, activityName)
	}
	if at.IsZero() {
		at = s.now()
	}
	dateID := s.AddDate(at)

	id := len(s.signups) + 1
	s.signups = append(s.signups, Signup{
		FactSignupID:    id,
		StudentID:       studentID,
		ActivityID:      activityID,
		DateID:          dateID,
		SignupTimestamp: at.Format(time.RFC3339),
	})
	return id, nil
}

func (s *Store) StudentByEmail(email string) (Student, bool) {
	id, ok := s.studentByEmail[email]
	if !ok {
		return Student{}, false
	}
	return s.students[id-1], true
}

func (s *Store) ActivityByName(name string) (Activity, bool) {
	id, ok := s.activityByName[name]
	if !ok {
		return Activity{}, false
	}
	return s.activities[id-1], true
}

func (s *Store) StudentByID(id int) (Student, bool) {
	if id < 1 || id > len(s.students) {
		return Student{}, false
	}
	return s.students[id-1], true
}

func (s *Store) ActivityByID(id int) (Activity, bool) {
	if id < 1 || id > len(s.activities) {
		return Activity{}, false
	}
	return s.activities[id-1], true
}

func (s *Store) DateByID(id int) (Date, bool) {
	if id < 1 || id > len(s.dates) {
		return Date{}, false
	}
	return s.dates[id-1], true
}

// Students returns the student dimension in insertion order. The slice is
// a copy; rows themselves are plain values.
func (s *Store) Students() []Student {
	out := make([]Student, len(s.students))
	copy(out, s.students)
	return out
}

func (s *Store) Activities() []Activity {
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

func (s *Store) Dates() []Date {
	out := make([]Date, len(s.dates))
	copy(out, s.dates)
	return out
}

func (s *Store) Signups() []Signup {
	out := make([]Signup, len(s.signups))
	copy(out, s.signups)
	return out
}

// SignupsByStudent returns the student's facts in insertion order. An
// unknown email yields an empty result, not an error.
func (s *Store) SignupsByStudent(email string) []Signup {
	id, ok := s.studentByEmail[email]
	if !ok {
		return nil
	}
	var out []Signup
	for _, f := range s.signups {
		if f.StudentID == id {
			out = append(out, f)
		}
	}
	return out
}

// SignupsByActivity returns the activity's facts in insertion order. An
// unknown name yields an empty result, not an error.
func (s *Store) SignupsByActivity(name string) []Signup {
	id, ok := s.activityByName[name]
	if !ok {
		return nil
	}
	var out []Signup
	for _, f := range s.signups {
		if f.ActivityID == id {
			out = append(out, f)
		}
	}
	return out
}
