package writepot_test

import (
	"bytes"
	"go/token"
	"testing"
	"time"

	"github.com/romshark/potext/internal/extract"
	"github.com/romshark/potext/internal/writepot"
	"github.com/romshark/potext/po"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	catalog := &extract.Catalog{Messages: map[extract.Msg]extract.MsgMeta{
		{ID: "Hello"}: {Pos: []token.Position{
			{Filename: "main.go", Line: 10, Column: 5},
		}},
		{ID: "%d file", IDPlural: "%d files", Plural: true}: {Pos: []token.Position{
			{Filename: "main.go", Line: 12, Column: 5},
		}},
		{Context: "menu", ID: "Open"}: {Pos: []token.Position{
			{Filename: "ui.go", Line: 3, Column: 1},
		}},
	}}

	var buf bytes.Buffer
	creation := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)
	writepot.Write(&buf, creation, catalog)

	require.Equal(t, `msgid ""
msgstr ""
"POT-Creation-Date: 2025-01-02 15:04+0000\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"
"X-Generator: github.com/romshark/potext/cmd/potext\n"

#: main.go:12:5
msgid "%d file"
msgid_plural "%d files"
msgstr[0] ""
msgstr[1] ""

#: main.go:10:5
msgid "Hello"
msgstr ""

#: ui.go:3:1
msgctxt "menu"
msgid "Open"
msgstr ""

`, buf.String())
}

// A zero creation time omits the POT-Creation-Date header.
func TestWriteZeroCreationTime(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	writepot.Write(&buf, time.Time{}, &extract.Catalog{})
	require.NotContains(t, buf.String(), "POT-Creation-Date")
	require.Contains(t, buf.String(), `"Content-Type: text/plain; charset=UTF-8\n"`)
}

// The generated template must decode back into an empty catalog with
// the default plural rule.
func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()
	catalog := &extract.Catalog{Messages: map[extract.Msg]extract.MsgMeta{
		{ID: "Hello"}: {},
	}}
	var buf bytes.Buffer
	writepot.Write(&buf, time.Now(), catalog)

	f, err := po.NewDecoder().Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, f.Rule.NPlurals)
	require.Equal(t, "text/plain; charset=UTF-8", f.Headers.Get("Content-Type"))
	// The untranslated template entries are dropped by the decoder.
	require.Empty(t, f.Messages)
}
