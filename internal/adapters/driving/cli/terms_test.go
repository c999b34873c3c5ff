package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

func writeVocabulary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terms.txt")
	require.NoError(t, os.WriteFile(path, []byte("# dishes\nbirria\n\nsmash burger\n"), 0o600))
	return path
}

func TestTermsImportCmd_RequiresFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("terms", "import")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)
}

func TestTermsImportCmd_ReadsFile(t *testing.T) {
	ts, cleanup := installTestServices()
	defer cleanup()
	path := writeVocabulary(t)

	out, err := executeCommand("terms", "import", "--file", path, "--inactive", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, ts.vocabulary.imported, "smash burger")
	assert.Equal(t, []driving.ImportOptions{{Inactive: true, DryRun: true}}, ts.vocabulary.importOpts)
	assert.Contains(t, out, "Dry run, nothing was written.")
	assert.Contains(t, out, "Created: 2  Reactivated: 1  Unchanged: 0")
	assert.Contains(t, out, "Skipped: 0 blank, 1 comments")
}

func TestTermsImportCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("terms", "import", "-f", filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening vocabulary")
}

func TestTermsSeedCmd(t *testing.T) {
	ts, cleanup := installTestServices()
	defer cleanup()

	out, err := executeCommand("terms", "seed", "--deactivate-stops")

	require.NoError(t, err)
	assert.Equal(t, driving.SeedOptions{DeactivateStops: true}, ts.vocabulary.seedOpts)
	assert.Contains(t, out, "Created: 120  Reactivated: 0")
	assert.Contains(t, out, "Stop terms deactivated: 2")
}

func TestTermsListCmd(t *testing.T) {
	ts, cleanup := installTestServices()
	defer cleanup()

	out, err := executeCommand("terms", "list", "--inactive", "--origin", "korean")

	require.NoError(t, err)
	assert.Equal(t, domain.TermFilter{IncludeInactive: true, Origin: domain.OriginKorean}, ts.vocabulary.filter)
	assert.Contains(t, out, "2 terms")
	assert.Contains(t, out, "kimchi")
	assert.Contains(t, out, "Korean")
	assert.Contains(t, out, "inactive")
}

func TestTermsListCmd_UnknownOrigin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("terms", "list", "--origin", "martian")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTermsActivateAndDeactivate(t *testing.T) {
	ts, cleanup := installTestServices()
	defer cleanup()

	out, err := executeCommand("terms", "deactivate", "cutting")
	require.NoError(t, err)
	assert.Equal(t, "cutting", ts.vocabulary.activeText)
	assert.False(t, ts.vocabulary.active)
	assert.Contains(t, out, `Deactivated "cutting".`)

	out, err = executeCommand("terms", "activate", "birria")
	require.NoError(t, err)
	assert.True(t, ts.vocabulary.active)
	assert.Contains(t, out, `Activated "birria".`)
}

func TestTermsActivate_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("terms", "activate", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTermsCandidatesCmd(t *testing.T) {
	ts, cleanup := installTestServices()
	defer cleanup()

	out, err := executeCommand("terms", "candidates", "--top", "10", "--max-ngram", "3", "--engagement")

	require.NoError(t, err)
	want := domain.DefaultCandidateOptions()
	want.Top = 10
	want.MaxNgram = 3
	want.WeightByEngagement = true
	assert.Equal(t, want, ts.vocabulary.candOpts)
	assert.Contains(t, out, "Scanned 40 posts.")
	assert.Contains(t, out, "smash burger")
}

func TestTermsWatchCmd(t *testing.T) {
	ts, cleanup := installTestServices()
	defer cleanup()
	path := writeVocabulary(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"terms", "watch", "--file", path, "--match"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, path, ts.watcher.path)
	assert.True(t, ts.watcher.stopped)
	assert.Len(t, ts.vocabulary.importOpts, 1)
	assert.Len(t, ts.matching.calls, 1)
	assert.Contains(t, buf.String(), "Watching "+path)

	require.NotNil(t, ts.watcher.onChange)
	ts.watcher.onChange()
	assert.Len(t, ts.vocabulary.importOpts, 2)
	assert.Len(t, ts.matching.calls, 2)
}
