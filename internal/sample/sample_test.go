package sample

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activityhub/internal/ingest"
	"github.com/mergington/activityhub/internal/star"
)

// The workbook must round-trip through the loader without losing a row.
func TestWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), WorkbookName)
	require.NoError(t, WriteWorkbook(path))

	st := star.New()
	rep := ingest.NewLoader(st).LoadWorkbook(path)
	require.NoError(t, rep.Err())

	assert.Equal(t, 8, rep.Students.Loaded)
	assert.Equal(t, 5, rep.Activities.Loaded)
	assert.Equal(t, 10, rep.Signups.Loaded)

	chess, ok := st.ActivityByName("Chess Club")
	require.True(t, ok)
	assert.Equal(t, 12, chess.MaxParticipants)

	michael, ok := st.StudentByEmail("michael@mergington.edu")
	require.True(t, ok)
	assert.Equal(t, "Michael Johnson", michael.Name)
	assert.Len(t, st.SignupsByStudent("michael@mergington.edu"), 2)

	// Ten signups across eight distinct days (two shared days).
	assert.Len(t, st.Dates(), 8)
}

func TestCSVRoundTrip(t *testing.T) {
	paths, err := WriteCSVs(t.TempDir())
	require.NoError(t, err)

	st := star.New()
	rep := ingest.NewLoader(st).LoadCSVFiles(paths.Students, paths.Activities, paths.Signups)
	require.NoError(t, rep.Err())

	assert.Equal(t, 8, rep.Students.Loaded)
	assert.Equal(t, 5, rep.Activities.Loaded)
	assert.Equal(t, 10, rep.Signups.Loaded)
}

func TestSeedMatchesFileLoad(t *testing.T) {
	seeded := star.New()
	require.NoError(t, Seed(seeded))

	path := filepath.Join(t.TempDir(), WorkbookName)
	require.NoError(t, WriteWorkbook(path))
	loaded := star.New()
	require.NoError(t, ingest.NewLoader(loaded).LoadWorkbook(path).Err())

	assert.Equal(t, loaded.Students(), seeded.Students())
	assert.Equal(t, loaded.Activities(), seeded.Activities())
	assert.Equal(t, loaded.Signups(), seeded.Signups())
	assert.Equal(t, loaded.Dates(), seeded.Dates())
}

func TestDatasetAccessorsCopy(t *testing.T) {
	s := Students()
	require.NotEmpty(t, s)
	s[0].Email = "mutated@x.edu"
	assert.Equal(t, "michael@mergington.edu", Students()[0].Email)
}
