// Package ingest loads tabular signup data (xlsx workbooks or CSV files)
// into a star schema store.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mergington/activityhub/internal/star"
)

// Sheet names expected in a workbook.
const (
	SheetStudents   = "Students"
	SheetActivities = "Activities"
	SheetSignups    = "Signups"
)

// BatchResult reports one table's load: how many rows landed, and the
// error that stopped the batch (nil when every row loaded). Rows applied
// before the error stay in the store; there is no rollback.
type BatchResult struct {
	Loaded  int
	Skipped bool
	Err     error
}

// Report collects the per-table results of one load. ID tags log lines
// and API responses so a particular load can be traced.
type Report struct {
	ID         string
	Students   BatchResult
	Activities BatchResult
	Signups    BatchResult
}

// Err joins the batch errors; nil when every batch succeeded.
func (r Report) Err() error {
	return errors.Join(r.Students.Err, r.Activities.Err, r.Signups.Err)
}

// Loader feeds rows into a store. Batches are applied row by row and the
// first bad row stops its batch; one batch failing never aborts the
// others. Dimension tables load before the fact table so signups can
// resolve their students and activities.
type Loader struct {
	store *star.Store
}

func NewLoader(st *star.Store) *Loader {
	return &Loader{store: st}
}

// LoadWorkbook loads the Students, Activities and Signups sheets from an
// xlsx file on disk.
func (l *Loader) LoadWorkbook(path string) Report {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return reportAll(fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()
	return l.loadWorkbook(f)
}

// LoadWorkbookReader is LoadWorkbook for an in-flight upload.
func (l *Loader) LoadWorkbookReader(r io.Reader) Report {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return reportAll(fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()
	return l.loadWorkbook(f)
}

func (l *Loader) loadWorkbook(f *excelize.File) Report {
	rep := Report{ID: uuid.NewString()}
	rep.Students = l.loadSheet(f, SheetStudents, l.studentRow)
	rep.Activities = l.loadSheet(f, SheetActivities, l.activityRow)
	rep.Signups = l.loadSheet(f, SheetSignups, l.signupRow)
	return rep
}

func (l *Loader) loadSheet(f *excelize.File, sheet string, apply rowFunc) BatchResult {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return BatchResult{Err: fmt.Errorf("sheet %s: %w", sheet, err)}
	}
	return l.applyRows(rows, apply)
}

// reportAll marks every batch failed with the same error, for when the
// workbook itself cannot be opened.
func reportAll(err error) Report {
	return Report{
		ID:         uuid.NewString(),
		Students:   BatchResult{Err: err},
		Activities: BatchResult{Err: err},
		Signups:    BatchResult{Err: err},
	}
}

// rowFunc applies one data row, resolving columns through the header map.
type rowFunc func(head map[string]int, row []string) error

// applyRows runs a batch: the first row is the header, blank rows are
// skipped, and the first failing row stops the batch with its
// spreadsheet-style row number in the error.
func (l *Loader) applyRows(rows [][]string, apply rowFunc) BatchResult {
	if len(rows) == 0 {
		return BatchResult{}
	}
	head := headerIndex(rows[0])
	var res BatchResult
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		if err := apply(head, row); err != nil {
			res.Err = fmt.Errorf("row %d: %w", i+2, err)
			return res
		}
		res.Loaded++
	}
	return res
}

func (l *Loader) studentRow(head map[string]int, row []string) error {
	email, err := cell(head, row, "email")
	if err != nil {
		return err
	}
	name, err := cell(head, row, "name")
	if err != nil {
		return err
	}
	grade, err := intCell(head, row, "grade_level")
	if err != nil {
		return err
	}
	l.store.AddStudent(email, name, grade)
	return nil
}

func (l *Loader) activityRow(head map[string]int, row []string) error {
	name, err := cell(head, row, "activity_name")
	if err != nil {
		return err
	}
	description, err := cell(head, row, "description")
	if err != nil {
		return err
	}
	schedule, err := cell(head, row, "schedule")
	if err != nil {
		return err
	}
	max, err := intCell(head, row, "max_participants")
	if err != nil {
		return err
	}
	l.store.AddActivity(name, description, schedule, max)
	return nil
}

func (l *Loader) signupRow(head map[string]int, row []string) error {
	email, err := cell(head, row, "student_email")
	if err != nil {
		return err
	}
	name, err := cell(head, row, "activity_name")
	if err != nil {
		return err
	}

	// signup_date is optional, both the column and the cell. Absent means
	// the store stamps the signup with the current instant.
	var at time.Time
	if raw := optionalCell(head, row, "signup_date"); raw != "" {
		at, err = parseDate(raw)
		if err != nil {
			return err
		}
	}

	_, err = l.store.AddSignupAt(email, name, at)
	return err
}

// headerIndex maps trimmed, lowercased header captions to column
// positions, so sheets may order their columns freely.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cell reads a required column. Rows may be shorter than the header when
// their trailing cells are empty, so a short row is not an error.
func cell(head map[string]int, row []string, name string) (string, error) {
	i, ok := head[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	if i >= len(row) {
		return "", nil
	}
	return strings.TrimSpace(row[i]), nil
}

func optionalCell(head map[string]int, row []string, name string) string {
	i, ok := head[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func intCell(head map[string]int, row []string, name string) (int, error) {
	raw, err := cell(head, row, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Spreadsheet numerics sometimes surface as floats ("12.0").
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 0, fmt.Errorf("column %q: %q is not a number", name, raw)
		}
		n = int(f)
	}
	return n, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/06", // Excel's short date display
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
