package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestInstallApplyRestore(t *testing.T) {
	appDir := t.TempDir()
	game := testutil.NewTestGame(t, false).WithStockDocuments()
	font := testutil.FontFile(t, "GoRegular.ttf")
	p := game.Paths()

	out, err := run(t, "install", game.Root(), "--app-dir", appDir)
	require.NoError(t, err)
	require.Contains(t, out, game.Root())
	require.NoFileExists(t, p.UIFont())

	out, err = run(t, "apply", font, "--app-dir", appDir, "--show-variable", "Family")
	require.NoError(t, err)
	require.Equal(t, "Go\n", out)
	require.FileExists(t, filepath.Join(p.AssetDir, "GoRegular.ttf"))
	require.FileExists(t, filepath.Join(appDir, "fonts", "GoRegular.ttf"))

	out, err = run(t, "--app-dir", appDir, "--show-variable", "InstalledFamily")
	require.NoError(t, err)
	require.Equal(t, "Go\n", out)

	out, err = run(t, "restore", "--app-dir", appDir)
	require.NoError(t, err)
	require.Contains(t, out, "Restored 2 documents")
	require.FileExists(t, p.UIFont())
	require.NoFileExists(t, filepath.Join(p.AssetDir, "GoRegular.ttf"))
}

func TestApply_RunsFirstInstallWhenPending(t *testing.T) {
	appDir := t.TempDir()
	game := testutil.NewTestGame(t, true).WithStockDocuments()
	font := testutil.FontFile(t, "GoRegular.ttf")

	out, err := run(t, "apply", font, "--app-dir", appDir, "-g", game.Root(), "-o", "json")
	require.NoError(t, err)

	var res struct {
		Family   string `json:"family"`
		FileName string `json:"fileName"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "Go", res.Family)
	require.Equal(t, "GoRegular.ttf", res.FileName)

	marker, err := os.ReadFile(filepath.Join(appDir, "setup", "first_install.txt"))
	require.NoError(t, err)
	require.Equal(t, "FALSE", strings.TrimSpace(string(marker)))
	require.FileExists(t, game.Paths().UIFontBackup())
}

func TestApply_FamilyOverride(t *testing.T) {
	appDir := t.TempDir()
	game := testutil.NewTestGame(t, false).WithStockDocuments()
	font := testutil.FontFile(t, "GoRegular.ttf")

	_, err := run(t, "install", game.Root(), "--app-dir", appDir)
	require.NoError(t, err)
	_, err = run(t, "apply", font, "--app-dir", appDir, "--family", "Go Display")
	require.NoError(t, err)

	require.Contains(t, game.Read(game.Paths().GlobalReplacement), "Go Display")
}

func TestApply_WithoutGamePath(t *testing.T) {
	font := testutil.FontFile(t, "GoRegular.ttf")

	_, err := run(t, "apply", font, "--app-dir", t.TempDir())
	require.ErrorIs(t, err, fserr.ErrPathNotSet)
}

func TestApply_UnreadableFont(t *testing.T) {
	appDir := t.TempDir()
	game := testutil.NewTestGame(t, false).WithStockDocuments()
	font := testutil.BrokenFontFile(t, "Broken.ttf")

	_, err := run(t, "install", game.Root(), "--app-dir", appDir)
	require.NoError(t, err)
	before := game.Read(game.Paths().FontsCatalog)

	_, err = run(t, "apply", font, "--app-dir", appDir)
	require.ErrorIs(t, err, fserr.ErrFontMetadataUnreadable)
	require.Equal(t, before, game.Read(game.Paths().FontsCatalog))
}

func TestInstall_RequiresPath(t *testing.T) {
	_, err := run(t, "install", "--app-dir", t.TempDir())
	require.Error(t, err)
}

func TestPathsCmd(t *testing.T) {
	game := testutil.NewTestGame(t, true)

	out, err := run(t, "paths", "--app-dir", t.TempDir(), "-g", game.Root(), "--show-variable", "Layout")
	require.NoError(t, err)
	require.Equal(t, "Nested\n", out)
}

func TestSetupCmd(t *testing.T) {
	appDir := filepath.Join(t.TempDir(), "app")

	out, err := run(t, "setup", "--app-dir", appDir)
	require.NoError(t, err)
	require.Contains(t, out, appDir)
	for _, d := range []string{"dl", "auto", "fonts", "setup"} {
		require.DirExists(t, filepath.Join(appDir, d))
	}
}

func TestLibraryCommands(t *testing.T) {
	appDir := t.TempDir()
	font := testutil.MonoFontFile(t, "GoMono.ttf")

	out, err := run(t, "library", "add", font, "--app-dir", appDir)
	require.NoError(t, err)
	require.Contains(t, out, "Go Mono")

	out, err = run(t, "library", "list", "--app-dir", appDir, "-o", "vars")
	require.NoError(t, err)
	require.Equal(t, "GoMono.ttf=Go Mono\n", out)

	_, err = run(t, "library", "remove", "GoMono.ttf", "--app-dir", appDir)
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(appDir, "fonts", "GoMono.ttf"))

	out, err = run(t, "library", "list", "--app-dir", appDir)
	require.NoError(t, err)
	require.Contains(t, out, "No fonts")
}

func TestWatch_RequiresAppliedFont(t *testing.T) {
	appDir := t.TempDir()
	game := testutil.NewTestGame(t, false).WithStockDocuments()

	_, err := run(t, "install", game.Root(), "--app-dir", appDir)
	require.NoError(t, err)

	_, err = run(t, "watch", "--app-dir", appDir)
	require.ErrorContains(t, err, "no library font is applied")
}
