package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir stands in for testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestInitThenBuild_ProducesPage(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}

	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.FileExists(t, "homer.yaml")
	require.FileExists(t, "links.txt")
	require.FileExists(t, "templates/default/page.template.html")
	require.FileExists(t, "templates/terminal/page.template.html")

	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))
	data, err := os.ReadFile("index.html")
	require.NoError(t, err)
	require.Contains(t, string(data), `<a href="https://github.com">GitHub</a>`)
}

func TestInit_SecondRunWithoutForce_Fails(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}

	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.Error(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{}, root))
}

func TestBuild_ThemeOverride_UsesRequestedTemplates(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))

	require.NoError(t, (&BuildCmd{Theme: "terminal", Output: "term.html"}).Run(&Global{}, root))
	data, err := os.ReadFile("term.html")
	require.NoError(t, err)
	require.Contains(t, string(data), "ui-monospace")
}

func TestBuild_MissingInput_ReturnsError(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, os.Remove("links.txt"))

	err := (&BuildCmd{}).Run(&Global{}, root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "input file not found")
}

func TestCheck_BadLines_ReturnsErrorWithoutWritingOutput(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))
	require.NoError(t, os.WriteFile("links.txt", []byte("Orphan, orphan.example\n"), 0o644))

	err := (&CheckCmd{}).Run(&Global{}, root)
	require.Error(t, err)
	require.NoFileExists(t, "index.html")
}

func TestCheck_CleanInput_Succeeds(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))

	require.NoError(t, (&CheckCmd{}).Run(&Global{}, root))
}

func TestHistory_Disabled_ReturnsHelpfulError(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))

	err := (&HistoryCmd{Limit: 5}).Run(&Global{}, root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "history.path")
}

func TestBuildWithHistory_HistoryListsRun(t *testing.T) {
	chdir(t, t.TempDir())
	root := &CLI{Config: "homer.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, root))

	cfg, err := os.ReadFile("homer.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("homer.yaml", append(cfg, []byte("history:\n  path: homer-history.db\n")...), 0o644))

	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))
	require.FileExists(t, "homer-history.db")
	require.NoError(t, (&HistoryCmd{Limit: 5}).Run(&Global{}, root))
}
