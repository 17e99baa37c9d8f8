package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mergington/activityhub/internal/ingest"
	"github.com/mergington/activityhub/internal/sample"
	"github.com/mergington/activityhub/internal/star"
)

// NewDemoCommand creates the demo command: a self-contained walkthrough
// that loads the sample workbook into a fresh store and prints every
// table and analytics query.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Load the sample workbook and walk through the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}
}

func runDemo(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	dir, err := os.MkdirTemp("", "activityhub-demo-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	workbook := filepath.Join(dir, sample.WorkbookName)
	if err := sample.WriteWorkbook(workbook); err != nil {
		return fmt.Errorf("write sample workbook: %w", err)
	}

	rule(out, "Star Schema Demo")
	fmt.Fprintf(out, "\nLoading data from: %s\n", workbook)

	st := star.New()
	report := ingest.NewLoader(st).LoadWorkbook(workbook)
	if err := report.Err(); err != nil {
		return fmt.Errorf("load sample workbook: %w", err)
	}
	fmt.Fprintf(out, "Loaded: %d students, %d activities, %d signups\n",
		report.Students.Loaded, report.Activities.Loaded, report.Signups.Loaded)

	printDimensions(out, st)
	printFacts(out, st)
	printAnalytics(out, st)
	printQueries(out, st)

	fmt.Fprintln(out)
	rule(out, "Done")
	return nil
}

func printDimensions(out io.Writer, st *star.Store) {
	fmt.Fprintln(out)
	rule(out, "Dimension Tables")

	students := st.Students()
	fmt.Fprintf(out, "\nStudents: %d records\n", len(students))
	for _, s := range head(students, 3) {
		fmt.Fprintf(out, "  - %s (Grade %d): %s\n", s.Name, s.GradeLevel, s.Email)
	}

	activities := st.Activities()
	fmt.Fprintf(out, "\nActivities: %d records\n", len(activities))
	for _, a := range activities {
		fmt.Fprintf(out, "  - %s: %d max participants\n", a.ActivityName, a.MaxParticipants)
	}

	dates := st.Dates()
	fmt.Fprintf(out, "\nDates: %d records\n", len(dates))
	for _, d := range head(dates, 5) {
		fmt.Fprintf(out, "  - %s (%s)\n", d.Date, d.Weekday)
	}
}

func printFacts(out io.Writer, st *star.Store) {
	fmt.Fprintln(out)
	rule(out, "Fact Table")

	signups := st.Signups()
	fmt.Fprintf(out, "\nSignups: %d records\n", len(signups))
	for _, f := range head(signups, 5) {
		student, _ := st.StudentByID(f.StudentID)
		activity, _ := st.ActivityByID(f.ActivityID)
		date, _ := st.DateByID(f.DateID)
		fmt.Fprintf(out, "  - %s -> %s on %s\n", student.Name, activity.ActivityName, date.Date)
	}
}

func printAnalytics(out io.Writer, st *star.Store) {
	fmt.Fprintln(out)
	rule(out, "Analytics Queries")

	fmt.Fprintln(out, "\nActivity analytics:")
	for _, row := range st.ActivityAnalytics() {
		fmt.Fprintf(out, "  - %s: %d/%d signed up, %d spots left\n",
			row.ActivityName, row.CurrentSignups, row.MaxParticipants, row.SpotsLeft)
	}

	fmt.Fprintln(out, "\nStudent analytics:")
	for _, row := range head(st.StudentAnalytics(), 3) {
		fmt.Fprintf(out, "  - %s (Grade %d): %d activities: %s\n",
			row.StudentName, row.GradeLevel, row.ActivitiesCount, strings.Join(row.Activities, ", "))
	}

	fmt.Fprintln(out, "\nGrade analytics:")
	for _, row := range st.GradeAnalytics() {
		fmt.Fprintf(out, "  - Grade %d: %d students, %d signups, %.2f avg per student\n",
			row.GradeLevel, row.UniqueStudents, row.TotalSignups, row.AvgSignupsPerStudent)
	}
}

func printQueries(out io.Writer, st *star.Store) {
	fmt.Fprintln(out)
	rule(out, "Query Examples")

	email := "michael@mergington.edu"
	fmt.Fprintf(out, "\nSignups for %s:\n", email)
	for _, f := range st.SignupsByStudent(email) {
		activity, _ := st.ActivityByID(f.ActivityID)
		date, _ := st.DateByID(f.DateID)
		fmt.Fprintf(out, "  - %s on %s\n", activity.ActivityName, date.Date)
	}

	name := "Chess Club"
	fmt.Fprintf(out, "\nSignups for %s:\n", name)
	for _, f := range st.SignupsByActivity(name) {
		student, _ := st.StudentByID(f.StudentID)
		date, _ := st.DateByID(f.DateID)
		fmt.Fprintf(out, "  - %s (%s) on %s\n", student.Name, student.Email, date.Date)
	}
}

func rule(out io.Writer, title string) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", 60))
}

func head[T any](rows []T, n int) []T {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}
