package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/history"
	"git.home.luguber.info/inful/homer/internal/theme"
)

func testConfig(t *testing.T, links string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, theme.Install(filepath.Join(dir, "templates"), "default", false))

	input := filepath.Join(dir, "links.txt")
	require.NoError(t, os.WriteFile(input, []byte(links), 0o644))

	cfg := config.Default()
	cfg.Input = input
	cfg.Output = filepath.Join(dir, "index.html")
	cfg.Templates.Directory = filepath.Join(dir, "templates")
	return cfg
}

func TestRun_ValidInput_WritesPage(t *testing.T) {
	cfg := testConfig(t, "Dev Tools\nGitHub, github.com, Code hosting\n\nPersonal\nMail, mail.example.com\n")

	result, err := New(cfg, nil, nil).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Groups)
	require.Equal(t, 2, result.Links)
	require.Empty(t, result.LineErrors)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Contains(t, string(data), `<a href="https://github.com">GitHub</a>`)
}

func TestRun_OrphanLinkLine_RecoveredNotFatal(t *testing.T) {
	cfg := testConfig(t, "GitHub, github.com\n")

	result, err := New(cfg, nil, nil).Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, result.Groups)
	require.Zero(t, result.Links)
	require.Len(t, result.LineErrors, 1)

	_, err = os.Stat(cfg.Output)
	require.NoError(t, err)
}

func TestRun_MissingInput_Fatal(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Input = filepath.Join(t.TempDir(), "nope.txt")

	_, err := New(cfg, nil, nil).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "input file not found")
}

func TestRun_MissingTheme_Fatal(t *testing.T) {
	cfg := testConfig(t, "Dev\n")
	cfg.Templates.Theme = "nope"

	_, err := New(cfg, nil, nil).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing template")
}

func TestRun_WithHistoryStore_RecordsRun(t *testing.T) {
	cfg := testConfig(t, "Dev\nGitHub, github.com\n")
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	result, err := New(cfg, nil, store).Run(context.Background())
	require.NoError(t, err)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, result.RunID, runs[0].ID)
	require.Equal(t, 1, runs[0].Groups)
	require.Equal(t, 1, runs[0].Links)
	require.Equal(t, "success", runs[0].Outcome)
}

func TestRun_FatalError_RecordedAsFailed(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Input = filepath.Join(t.TempDir(), "nope.txt")
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	_, err = New(cfg, nil, store).Run(context.Background())
	require.Error(t, err)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "failed", runs[0].Outcome)
}

func TestRun_RepeatedRuns_SamePageContentModuloTimestamp(t *testing.T) {
	cfg := testConfig(t, "Dev\nGitHub, github.com\n")
	runner := New(cfg, nil, nil)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	// Both contain the same rendered model; only the two timestamp lines may
	// differ between runs.
	require.Contains(t, string(first), `<a href="https://github.com">GitHub</a>`)
	require.Contains(t, string(second), `<a href="https://github.com">GitHub</a>`)
}
