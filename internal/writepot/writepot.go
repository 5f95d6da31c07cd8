// Package writepot marshals extracted messages into a gettext
// compatible `.pot` translation template.
package writepot

import (
	"fmt"
	"io"
	"time"

	"github.com/romshark/potext/internal/extract"
)

// Write writes a `.pot` template. The Language header is left empty
// as conventional for templates.
func Write(w io.Writer, creation time.Time, catalog *extract.Catalog) {
	// Metadata block.
	_, _ = fmt.Fprintln(w, `msgid ""`)
	_, _ = fmt.Fprintln(w, `msgstr ""`)
	if !creation.IsZero() {
		_, _ = fmt.Fprintf(w, "\"POT-Creation-Date: %s\\n\"\n",
			creation.Format("2006-01-02 15:04-0700"))
	}
	_, _ = fmt.Fprint(w, "\"Language: \\n\"\n")
	_, _ = fmt.Fprintln(w, "\"MIME-Version: 1.0\\n\"")
	_, _ = fmt.Fprintln(w, "\"Content-Type: text/plain; charset=UTF-8\\n\"")
	_, _ = fmt.Fprintln(w, "\"Content-Transfer-Encoding: 8bit\\n\"")
	_, _ = fmt.Fprintln(w, "\"Plural-Forms: nplurals=2; plural=(n != 1);\\n\"")
	_, _ = fmt.Fprint(w, "\"X-Generator: "+
		"github.com/romshark/potext/cmd/potext\\n\"\n\n")

	for msg, meta := range catalog.Ordered() {
		for _, p := range meta.Pos {
			_, _ = fmt.Fprintf(w, "#: %s:%d:%d\n", p.Filename, p.Line, p.Column)
		}
		if msg.Context != "" {
			_, _ = fmt.Fprintf(w, "msgctxt %q\n", msg.Context)
		}
		_, _ = fmt.Fprintf(w, "msgid %q\n", msg.ID)
		if msg.Plural {
			_, _ = fmt.Fprintf(w, "msgid_plural %q\n", msg.IDPlural)
			_, _ = fmt.Fprint(w, "msgstr[0] \"\"\n")
			_, _ = fmt.Fprint(w, "msgstr[1] \"\"\n")
		} else {
			_, _ = fmt.Fprint(w, "msgstr \"\"\n")
		}
		_, _ = fmt.Fprintln(w)
	}
}
