package star

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStudentDedup(t *testing.T) {
	st := New()

	id1 := st.AddStudent("alice@mergington.edu", "Alice Wilson", 11)
	id2 := st.AddStudent("alice@mergington.edu", "Someone Else", 12)

	assert.Equal(t, id1, id2)
	require.Len(t, st.Students(), 1)

	// First write wins: the duplicate call's attributes are discarded.
	got, ok := st.StudentByEmail("alice@mergington.edu")
	require.True(t, ok)
	assert.Equal(t, "Alice Wilson", got.Name)
	assert.Equal(t, 11, got.GradeLevel)
}

func TestAddActivityDedup(t *testing.T) {
	st := New()

	id1 := st.AddActivity("Chess Club", "Learn strategies", "Fridays", 12)
	id2 := st.AddActivity("Chess Club", "Totally different", "Mondays", 99)

	assert.Equal(t, id1, id2)
	require.Len(t, st.Activities(), 1)

	got, ok := st.ActivityByName("Chess Club")
	require.True(t, ok)
	assert.Equal(t, "Learn strategies", got.Description)
	assert.Equal(t, 12, got.MaxParticipants)
}

func TestAddDateDedupByDay(t *testing.T) {
	st := New()

	morning := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC)

	id1 := st.AddDate(morning)
	id2 := st.AddDate(evening)
	assert.Equal(t, id1, id2, "same calendar day must map to one row")
	require.Len(t, st.Dates(), 1)

	d, ok := st.DateByID(id1)
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", d.Date)
	assert.Equal(t, 15, d.Day)
	assert.Equal(t, 1, d.Month)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, "Monday", d.Weekday)

	id3 := st.AddDate(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, id1+1, id3)
}

func TestCounterMonotonicity(t *testing.T) {
	st := New()

	emails := []string{"a@x.edu", "b@x.edu", "c@x.edu", "d@x.edu", "e@x.edu"}
	for i, e := range emails {
		id := st.AddStudent(e, "Student", 9)
		assert.Equal(t, i+1, id)

		// Interleaved duplicates must not advance the counter.
		dup := st.AddStudent(emails[0], "Dup", 10)
		assert.Equal(t, 1, dup)
	}

	students := st.Students()
	require.Len(t, students, len(emails))
	for i, s := range students {
		assert.Equal(t, i+1, s.StudentID)
		assert.Equal(t, emails[i], s.Email)
	}
}

func TestAddSignupUnknownStudent(t *testing.T) {
	st := New()
	st.AddActivity("Chess Club", "Chess", "Fridays", 12)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := st.AddSignupAt("ghost@x.edu", "Chess Club", at)
	require.ErrorIs(t, err, ErrStudentNotFound)

	// A failed signup must leave no trace: no fact row and no date row
	// created as a side effect.
	assert.Empty(t, st.Signups())
	assert.Empty(t, st.Dates())
}

func TestAddSignupUnknownActivity(t *testing.T) {
	st := New()
	st.AddStudent("a@x.edu", "A", 9)

	_, err := st.AddSignup("a@x.edu", "Ghost Club")
	require.ErrorIs(t, err, ErrActivityNotFound)
	assert.Empty(t, st.Signups())

	// The student side is resolved first, so when both are unknown the
	// student error is the one reported.
	_, err = st.AddSignup("ghost@x.edu", "Ghost Club")
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAddSignupCreatesDateOnDemand(t *testing.T) {
	st := New()
	st.AddStudent("a@x.edu", "A", 9)
	st.AddStudent("b@x.edu", "B", 10)
	st.AddActivity("Art Club", "Art", "Thursdays", 15)

	day := time.Date(2024, 1, 19, 9, 0, 0, 0, time.UTC)
	_, err := st.AddSignupAt("a@x.edu", "Art Club", day)
	require.NoError(t, err)
	require.Len(t, st.Dates(), 1)

	// Second signup on the same day reuses the date row.
	_, err = st.AddSignupAt("b@x.edu", "Art Club", day.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Len(t, st.Dates(), 1)

	signups := st.Signups()
	require.Len(t, signups, 2)
	assert.Equal(t, signups[0].DateID, signups[1].DateID)
}

func TestAddSignupDefaultsToNow(t *testing.T) {
	st := New()
	fixed := time.Date(2024, 2, 14, 13, 45, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	st.AddStudent("a@x.edu", "A", 9)
	st.AddActivity("Chess Club", "Chess", "Fridays", 12)

	id, err := st.AddSignup("a@x.edu", "Chess Club")
	require.NoError(t, err)
	require.Equal(t, 1, id)

	f := st.Signups()[0]
	assert.Equal(t, fixed.Format(time.RFC3339), f.SignupTimestamp)

	d, ok := st.DateByID(f.DateID)
	require.True(t, ok)
	assert.Equal(t, "2024-02-14", d.Date)
	assert.Equal(t, "Wednesday", d.Weekday)
}

func TestRoundTripNaturalKey(t *testing.T) {
	st := New()
	id := st.AddStudent("emma@mergington.edu", "Emma Williams", 11)

	got, ok := st.StudentByEmail("emma@mergington.edu")
	require.True(t, ok)
	assert.Equal(t, id, got.StudentID)

	// Natural keys are case-sensitive exact matches.
	_, ok = st.StudentByEmail("Emma@mergington.edu")
	assert.False(t, ok)
}

func TestLookupsOnUnknownKeys(t *testing.T) {
	st := New()

	_, ok := st.StudentByEmail("nobody@x.edu")
	assert.False(t, ok)
	_, ok = st.ActivityByName("Nothing Club")
	assert.False(t, ok)
	_, ok = st.StudentByID(1)
	assert.False(t, ok)
	_, ok = st.ActivityByID(0)
	assert.False(t, ok)
	_, ok = st.DateByID(-3)
	assert.False(t, ok)

	assert.Empty(t, st.SignupsByStudent("nobody@x.edu"))
	assert.Empty(t, st.SignupsByActivity("Nothing Club"))
}

func TestTableDumpsAreCopies(t *testing.T) {
	st := New()
	st.AddStudent("a@x.edu", "A", 9)

	dump := st.Students()
	dump[0].Name = "Mutated"

	got, ok := st.StudentByEmail("a@x.edu")
	require.True(t, ok)
	assert.Equal(t, "A", got.Name)
}

// TestSignupScenario walks two students through two activities and checks
// the fact table, the relationship queries, and both analytics reports
// against the expected shape.
func TestSignupScenario(t *testing.T) {
	st := New()

	st.AddStudent("a@x.edu", "A", 9)
	st.AddStudent("b@x.edu", "B", 10)
	st.AddActivity("Chess", "Chess", "Fridays", 1)
	st.AddActivity("Art", "Art", "Thursdays", 5)

	day := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	for _, sc := range []struct {
		email, activity string
	}{
		{"a@x.edu", "Chess"},
		{"b@x.edu", "Chess"},
		{"a@x.edu", "Art"},
	} {
		_, err := st.AddSignupAt(sc.email, sc.activity, day)
		require.NoError(t, err)
	}

	chess := st.SignupsByActivity("Chess")
	require.Len(t, chess, 2)
	assert.Equal(t, 1, chess[0].FactSignupID)
	assert.Equal(t, 2, chess[1].FactSignupID)

	byStudent := st.SignupsByStudent("a@x.edu")
	require.Len(t, byStudent, 2)

	acts := st.ActivityAnalytics()
	require.Len(t, acts, 2)
	assert.Equal(t, "Chess", acts[0].ActivityName)
	assert.Equal(t, 2, acts[0].CurrentSignups)
	assert.Equal(t, -1, acts[0].SpotsLeft)
	assert.Equal(t, 1, acts[1].CurrentSignups)
	assert.Equal(t, 4, acts[1].SpotsLeft)

	students := st.StudentAnalytics()
	require.Len(t, students, 2)
	assert.Equal(t, 2, students[0].ActivitiesCount)
	assert.Equal(t, []string{"Chess", "Art"}, students[0].Activities)
	assert.Equal(t, []string{"Chess"}, students[1].Activities)
}
