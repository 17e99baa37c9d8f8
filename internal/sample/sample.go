// Package sample ships the canonical Mergington demo dataset and writes
// it out as an xlsx workbook or as CSV files for the ingest package to
// read back.
package sample

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mergington/activityhub/internal/ingest"
	"github.com/mergington/activityhub/internal/star"
)

// WorkbookName is the conventional workbook file name; the server looks
// for it on startup.
const WorkbookName = "school_activities.xlsx"

type StudentRow struct {
	Email string
	Name  string
	Grade int
}

type ActivityRow struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
}

type SignupRow struct {
	StudentEmail string
	ActivityName string
	SignupDate   string // YYYY-MM-DD
}

var students = []StudentRow{
	{"michael@mergington.edu", "Michael Johnson", 9},
	{"daniel@mergington.edu", "Daniel Smith", 10},
	{"emma@mergington.edu", "Emma Williams", 11},
	{"sophia@mergington.edu", "Sophia Brown", 12},
	{"john@mergington.edu", "John Davis", 9},
	{"olivia@mergington.edu", "Olivia Miller", 10},
	{"alice@mergington.edu", "Alice Wilson", 11},
	{"bob@mergington.edu", "Bob Anderson", 12},
}

var activities = []ActivityRow{
	{"Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12},
	{"Programming Class", "Learn programming fundamentals and build software projects", "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20},
	{"Gym Class", "Physical education and sports activities", "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30},
	{"Art Club", "Explore creativity through various art mediums", "Thursdays, 3:30 PM - 5:00 PM", 15},
	{"Music Band", "Learn and perform with musical instruments", "Mondays and Wednesdays, 4:00 PM - 5:30 PM", 25},
}

var signups = []SignupRow{
	{"michael@mergington.edu", "Chess Club", "2024-01-15"},
	{"daniel@mergington.edu", "Chess Club", "2024-01-16"},
	{"emma@mergington.edu", "Programming Class", "2024-01-15"},
	{"sophia@mergington.edu", "Programming Class", "2024-01-17"},
	{"john@mergington.edu", "Gym Class", "2024-01-18"},
	{"olivia@mergington.edu", "Gym Class", "2024-01-18"},
	{"alice@mergington.edu", "Art Club", "2024-01-19"},
	{"bob@mergington.edu", "Music Band", "2024-01-20"},
	{"michael@mergington.edu", "Programming Class", "2024-01-21"},
	{"emma@mergington.edu", "Art Club", "2024-01-22"},
}

func Students() []StudentRow {
	out := make([]StudentRow, len(students))
	copy(out, students)
	return out
}

func Activities() []ActivityRow {
	out := make([]ActivityRow, len(activities))
	copy(out, activities)
	return out
}

func Signups() []SignupRow {
	out := make([]SignupRow, len(signups))
	copy(out, signups)
	return out
}

// Seed inserts the dataset straight into a store, bypassing the file
// round trip. Signups are stamped at midnight UTC of their sample date.
func Seed(st *star.Store) error {
	for _, s := range students {
		st.AddStudent(s.Email, s.Name, s.Grade)
	}
	for _, a := range activities {
		st.AddActivity(a.Name, a.Description, a.Schedule, a.MaxParticipants)
	}
	for _, g := range signups {
		day, err := time.Parse(star.DayKey, g.SignupDate)
		if err != nil {
			return fmt.Errorf("sample signup date %q: %w", g.SignupDate, err)
		}
		if _, err := st.AddSignupAt(g.StudentEmail, g.ActivityName, day); err != nil {
			return err
		}
	}
	return nil
}

// WriteWorkbook writes the dataset as a three-sheet xlsx workbook.
func WriteWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ingest.SheetStudents); err != nil {
		return err
	}
	if _, err := f.NewSheet(ingest.SheetActivities); err != nil {
		return err
	}
	if _, err := f.NewSheet(ingest.SheetSignups); err != nil {
		return err
	}

	if err := writeSheet(f, ingest.SheetStudents, studentRows()); err != nil {
		return err
	}
	if err := writeSheet(f, ingest.SheetActivities, activityRows()); err != nil {
		return err
	}
	if err := writeSheet(f, ingest.SheetSignups, signupRows()); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// CSVPaths names the three files WriteCSVs produces.
type CSVPaths struct {
	Students   string
	Activities string
	Signups    string
}

// WriteCSVs writes students.csv, activities.csv and signups.csv into dir.
func WriteCSVs(dir string) (CSVPaths, error) {
	paths := CSVPaths{
		Students:   filepath.Join(dir, "students.csv"),
		Activities: filepath.Join(dir, "activities.csv"),
		Signups:    filepath.Join(dir, "signups.csv"),
	}
	if err := writeCSV(paths.Students, studentRows()); err != nil {
		return paths, err
	}
	if err := writeCSV(paths.Activities, activityRows()); err != nil {
		return paths, err
	}
	if err := writeCSV(paths.Signups, signupRows()); err != nil {
		return paths, err
	}
	return paths, nil
}

func studentRows() [][]any {
	rows := [][]any{{"email", "name", "grade_level"}}
	for _, s := range students {
		rows = append(rows, []any{s.Email, s.Name, s.Grade})
	}
	return rows
}

func activityRows() [][]any {
	rows := [][]any{{"activity_name", "description", "schedule", "max_participants"}}
	for _, a := range activities {
		rows = append(rows, []any{a.Name, a.Description, a.Schedule, a.MaxParticipants})
	}
	return rows
}

func signupRows() [][]any {
	rows := [][]any{{"student_email", "activity_name", "signup_date"}}
	for _, g := range signups {
		rows = append(rows, []any{g.StudentEmail, g.ActivityName, g.SignupDate})
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &rows[i]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func writeCSV(path string, rows [][]any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
