package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// LoadCSVFiles loads up to three CSV files, dimensions first. An empty
// path marks its batch skipped rather than failed.
func (l *Loader) LoadCSVFiles(studentsPath, activitiesPath, signupsPath string) Report {
	rep := Report{ID: uuid.NewString()}
	rep.Students = l.csvOrSkip(studentsPath, l.studentRow)
	rep.Activities = l.csvOrSkip(activitiesPath, l.activityRow)
	rep.Signups = l.csvOrSkip(signupsPath, l.signupRow)
	return rep
}

// LoadStudentsCSV loads one students CSV (columns: email, name,
// grade_level).
func (l *Loader) LoadStudentsCSV(path string) BatchResult {
	return l.loadCSV(path, l.studentRow)
}

// LoadActivitiesCSV loads one activities CSV (columns: activity_name,
// description, schedule, max_participants).
func (l *Loader) LoadActivitiesCSV(path string) BatchResult {
	return l.loadCSV(path, l.activityRow)
}

// LoadSignupsCSV loads one signups CSV (columns: student_email,
// activity_name, optional signup_date).
func (l *Loader) LoadSignupsCSV(path string) BatchResult {
	return l.loadCSV(path, l.signupRow)
}

func (l *Loader) csvOrSkip(path string, apply rowFunc) BatchResult {
	if path == "" {
		return BatchResult{Skipped: true}
	}
	return l.loadCSV(path, apply)
}

func (l *Loader) loadCSV(path string, apply rowFunc) BatchResult {
	f, err := os.Open(path)
	if err != nil {
		return BatchResult{Err: fmt.Errorf("open csv: %w", err)}
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1 // the header decides which columns matter
	rows, err := rd.ReadAll()
	if err != nil {
		return BatchResult{Err: fmt.Errorf("read csv: %w", err)}
	}
	return l.applyRows(rows, apply)
}
