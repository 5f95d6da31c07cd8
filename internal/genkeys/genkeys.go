// Package genkeys generates Go constants for extracted message ids so
// call sites can reference catalog keys without repeating string
// literals. The caller is expected to gofumpt-format the output.
package genkeys

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode"

	"github.com/romshark/potext/internal/extract"
)

//go:embed template.gotmpl
var templateGotmpl string

// Write renders the message-key constants file for catalog to w.
func Write(w io.Writer, packageName string, catalog *extract.Catalog) error {
	tmpl, err := template.New("genkeys").Parse(templateGotmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	type key struct {
		Name    string
		Context string
		ID      string
	}
	type tmplInfo struct {
		Package string
		Keys    []key
	}

	info := tmplInfo{Package: packageName}
	taken := map[string]int{}
	for msg := range catalog.Ordered() {
		name := constName(msg.Context, msg.ID)
		// Distinct messages may sanitize to the same constant name.
		if n, ok := taken[name]; ok {
			taken[name] = n + 1
			name = fmt.Sprintf("%s%d", name, n+1)
		} else {
			taken[name] = 1
		}
		info.Keys = append(info.Keys, key{
			Name:    name,
			Context: msg.Context,
			ID:      msg.ID,
		})
	}

	return tmpl.Execute(w, info)
}

// constName derives an exported CamelCase constant name from a
// message context and id, like "MsgMenuOpenFile".
func constName(context, id string) string {
	var b strings.Builder
	b.WriteString("Msg")
	upper := true
	for _, r := range context + " " + id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
