package po

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/romshark/potext/plural"
)

// blockType tracks which logical field the quoted continuation lines
// of the current block belong to.
type blockType uint8

const (
	blockNone blockType = iota
	blockContext
	blockID
	blockIDPlural
	blockStr
)

// Decoder decodes `.po` catalog text.
//
// The decoder is deliberately tolerant: comments are skipped, malformed
// lines reset the current block instead of failing, and a message block
// is discarded when no msgid was seen or every translation slot stayed
// empty. The only hard failures are a malformed header block, a
// malformed Plural-Forms declaration and a plural formula the
// interpreter cannot compile.
type Decoder struct{}

func NewDecoder() *Decoder { return &Decoder{} }

// unescaper rewrites the escapes of quoted `.po` payloads.
// `\r\n` is listed before `\n` so a CRLF escape is never split;
// a `\\` outside these sequences is preserved literally.
var unescaper = strings.NewReplacer(
	`\r\n`, "\r\n",
	`\n`, "\n",
	`\t`, "\t",
	`\"`, `"`,
)

// Decode reads catalog text from r and returns the decoded file.
func (d *Decoder) Decode(r io.Reader) (*File, error) {
	f := &File{
		Headers: make(Headers),
		Rule:    plural.DefaultRule(),
	}

	cur := newMessage()
	block := blockNone
	strIndex := 0
	line := 0
	headerLine := 1 // Line the in-progress block started at.

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		l := strings.TrimSpace(sc.Text())

		switch {
		case l == "":
			if err := f.submit(cur, headerLine); err != nil {
				return nil, err
			}
			cur = newMessage()
			block = blockNone
			headerLine = line + 1

		case strings.HasPrefix(l, "#"):
			// Comment, block type unchanged.

		case strings.HasPrefix(l, "msgctxt"):
			block = blockContext

			cur.Context += extractQuoted(l)

		case strings.HasPrefix(l, "msgid_plural"):
			block = blockIDPlural
			// The plural entry gets one slot per category of the
			// currently known rule.
			cur.growTranslations(f.Rule.NPlurals)

			cur.IDPlural += extractQuoted(l)

		case strings.HasPrefix(l, "msgid"):
			block = blockID
			cur.idSet = true

			cur.ID += extractQuoted(l)

		case strings.HasPrefix(l, "msgstr"):
			block = blockStr
			strIndex = parseStrIndex(l)

			cur.setTranslation(strIndex, cur.translationAt(strIndex)+extractQuoted(l))

		case !strings.HasPrefix(l, `"`):
			// Neither keyword nor quoted continuation:
			// stop accumulating instead of appending to a wrong field.
			block = blockNone

		default:
			payload := extractQuoted(l)
			switch block {
			case blockContext:
				cur.Context += payload
			case blockID:
				cur.ID += payload
			case blockIDPlural:
				cur.IDPlural += payload
			case blockStr:
				cur.setTranslation(strIndex, cur.translationAt(strIndex)+payload)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	// Typical inputs don't terminate the last block with a blank line.
	if err := f.submit(cur, headerLine); err != nil {
		return nil, err
	}

	return f, nil
}

func newMessage() *Message {
	return &Message{Translations: []string{""}}
}

func (m *Message) translationAt(i int) string {
	if i < len(m.Translations) {
		return m.Translations[i]
	}
	return ""
}

// submit finalizes an in-progress message: the empty-id message is
// resolved into headers and the active plural rule, translated messages
// are appended, everything else is discarded.
func (f *File) submit(m *Message, atLine int) error {
	if !m.idSet {
		return nil
	}

	if m.ID == "" {
		if err := f.resolveHeaders(m.Translations[0]); err != nil {
			return Error{Line: atLine, Err: err}
		}
		return nil
	}

	if m.untranslated() {
		return nil
	}
	f.Messages = append(f.Messages, m)
	return nil
}

// resolveHeaders parses the header block and, if Plural-Forms is
// declared, replaces the active plural rule. It runs as soon as the
// empty-id block closes so later msgid_plural entries see the right
// nplurals.
func (f *File) resolveHeaders(block string) error {
	if err := parseHeaders(f.Headers, block); err != nil {
		return err
	}
	forms := f.Headers.Get(HeaderPluralForms)
	if forms == "" {
		return nil
	}
	rule, err := plural.ParseForms(forms)
	if err != nil {
		return err
	}
	f.Rule = rule
	return nil
}

// extractQuoted returns the content between the first and the last
// double quote of the line, unescaped. Lines without a quoted payload
// yield the empty string.
func extractQuoted(l string) string {
	first := strings.IndexByte(l, '"')
	last := strings.LastIndexByte(l, '"')
	if first == -1 || last <= first {
		return ""
	}
	return unescaper.Replace(l[first+1 : last])
}

// parseStrIndex returns the n of a `msgstr[n]` line, or 0 for plain msgstr.
func parseStrIndex(l string) int {
	rest := l[len("msgstr"):]
	if !strings.HasPrefix(rest, "[") {
		return 0
	}
	end := strings.IndexByte(rest, ']')
	if end == -1 {
		return 0
	}
	i, err := strconv.Atoi(rest[1:end])
	if err != nil || i < 0 {
		return 0
	}
	return i
}
