package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunErr(t *testing.T) {
	require.ErrorIs(t, run([]string{"potext"}), ErrNoCommand)
	require.ErrorIs(t, run([]string{"potext", "bogus"}), ErrUnknownCommand)
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "de.po")
	require.NoError(t, os.WriteFile(path, []byte(`msgid ""
msgstr ""
"Language: de\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

msgid "Hello"
msgstr "Hallo"
`), 0o644))

	require.NoError(t, run([]string{"potext", "stats", "-f", path}))
	require.NoError(t, run([]string{"potext", "stats", "-f", path, "-q"}))
}

func TestStatsErr(t *testing.T) {
	require.Error(t, run([]string{"potext", "stats"}))
	require.Error(t, run([]string{"potext", "stats",
		"-f", filepath.Join(t.TempDir(), "missing.po")}))
}

func TestExtract(t *testing.T) {
	moduleRoot, err := filepath.Abs("../..")
	require.NoError(t, err)

	root := CreateSetup(t, map[string]string{
		`go.mod`: `module example

go 1.24.1

require github.com/romshark/potext v0.0.0-00010101000000-000000000000

replace github.com/romshark/potext => ` + moduleRoot + `
`,
		`main.go`: `package main

import (
	"fmt"
	"strings"

	"github.com/romshark/potext"
)

func main() {
	c := potext.NewCatalog()
	if err := c.Load(strings.NewReader("")); err != nil {
		panic(err)
	}

	fmt.Println(c.GetString("Main message 1"))

	// This message is reused in multiple places.
	fmt.Println(c.GetString("Repeating message"))
	fmt.Println(c.GetString("Repeating message"))

	fmt.Println(c.GetParticularString("menu", "Open"))
	fmt.Println(c.GetPluralString("%d file", "%d files", 2))
	fmt.Println(c.GetParticularPluralString("trash", "%d item", "%d items", 3))
}
`,
	})
	t.Chdir(root)
	t.Setenv("GOFLAGS", "-mod=mod")
	t.Setenv("GOSUMDB", "off")
	t.Setenv("GOWORK", "off")

	outPOT := filepath.Join(root, "messages.pot")
	outGo := filepath.Join(root, "msgkeys", "msgkeys.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(outGo), 0o755))

	err = run([]string{
		"potext", "extract", "-p", "./...", "-q",
		"-o", outPOT, "-gopath", outGo, "-pkg", "msgkeys",
	})
	require.NoError(t, err)

	pot, err := os.ReadFile(outPOT)
	require.NoError(t, err)
	require.Contains(t, string(pot), `msgid "Main message 1"`)
	require.Contains(t, string(pot), `msgid "Repeating message"`)
	require.Contains(t, string(pot), `msgctxt "menu"`)
	require.Contains(t, string(pot), `msgid_plural "%d files"`)
	require.Contains(t, string(pot), `msgstr[1] ""`)

	gen, err := os.ReadFile(outGo)
	require.NoError(t, err)
	require.Contains(t, string(gen), "package msgkeys")
	require.Contains(t, string(gen), `MsgMainMessage1 = "Main message 1"`)
	require.Contains(t, string(gen), `MsgMenuOpen = "Open"`)
}

func CreateSetup(t *testing.T, fileMap map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for path, content := range fileMap {
		fullPath := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("failed to create directories for %s: %v", fullPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file %s: %v", fullPath, err)
		}
	}

	return root
}
