package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activityhub/internal/sample"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRootListsCommands(t *testing.T) {
	names := make([]string, 0, 3)
	for _, sub := range NewRootCommand().Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "seed")
	assert.Contains(t, names, "demo")
}

func TestSeedWritesDataset(t *testing.T) {
	dir := t.TempDir()
	out := runCommand(t, "seed", "--dir", dir)
	assert.Contains(t, out, "Sample data written:")

	for _, name := range []string{sample.WorkbookName, "students.csv", "activities.csv", "signups.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestDemoWalkthrough(t *testing.T) {
	out := runCommand(t, "demo")

	assert.Contains(t, out, "Loaded: 8 students, 5 activities, 10 signups")
	assert.Contains(t, out, "Chess Club: 2/12 signed up, 10 spots left")
	assert.Contains(t, out, "Michael Johnson -> Chess Club on 2024-01-15")
	assert.Contains(t, out, "Signups for michael@mergington.edu:")
}

func TestServeRejectsMissingConfigFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"serve", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, cmd.Execute())
}
