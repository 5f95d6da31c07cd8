package genkeys_test

import (
	"bytes"
	"testing"

	"github.com/romshark/potext/internal/extract"
	"github.com/romshark/potext/internal/genkeys"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	catalog := &extract.Catalog{Messages: map[extract.Msg]extract.MsgMeta{
		{ID: "Hello"}:                {},
		{ID: "%d file", Plural: true}: {},
		{Context: "menu", ID: "Open"}: {},
	}}

	var buf bytes.Buffer
	require.NoError(t, genkeys.Write(&buf, "msgkeys", catalog))

	require.Equal(t, `// Code generated by potext extract. DO NOT EDIT.

package msgkeys

// Message ids extracted from lookup call sites.
const (
	MsgDFile = "%d file"
	MsgHello = "Hello"
	MsgMenuOpen = "Open" // msgctxt "menu"
)
`, buf.String())
}

// Distinct messages sanitizing to the same constant name get a
// numeric suffix instead of colliding.
func TestWriteNameCollision(t *testing.T) {
	t.Parallel()
	catalog := &extract.Catalog{Messages: map[extract.Msg]extract.MsgMeta{
		{ID: "a-b"}: {},
		{ID: "a b"}: {},
	}}

	var buf bytes.Buffer
	require.NoError(t, genkeys.Write(&buf, "msgkeys", catalog))

	out := buf.String()
	require.Contains(t, out, `MsgAB = "a b"`)
	require.Contains(t, out, `MsgAB2 = "a-b"`)
}
