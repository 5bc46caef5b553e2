package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"locations.md":           {Data: []byte("# Locations\n\nWhere files come from")},
		"modules.txt":            {Data: []byte("Modules are found on module paths")},
		"nested/order.txt":       {Data: []byte("Listing order")},
		"option-patch-module.md": {Data: []byte("# --patch-module")},
		"config.txxt":            {Data: []byte("Configuration Guide")},
		"ignored.json":           {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(sampleFS())
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"locations", "modules", "option-patch-module", "order"}, tm.ListTopics())

		topic, ok := tm.GetTopic("order")
		require.True(t, ok)
		assert.Equal(t, "nested/order.txt", topic.FilePath)
		assert.Equal(t, "Listing order", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(sampleFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})
}

func TestGetTopicFlagSpellings(t *testing.T) {
	tm := New(sampleFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"patch-module", "--patch-module", "-patch-module", "option-patch-module"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-patch-module", topic.Name)
	}
	_, ok := tm.GetTopic("nothing")
	assert.False(t, ok)
}

type bracketRenderer struct{ formats []string }

func (r *bracketRenderer) Render(content, format string) string {
	r.formats = append(r.formats, format)
	return "[" + content + "]"
}

func newRoot(t *testing.T, renderer Renderer) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "tool", Short: "A tool"}
	root.AddCommand(&cobra.Command{Use: "list", Short: "List things", Run: func(*cobra.Command, []string) {}})
	require.NoError(t, InitializeWithOptions(root, sampleFS(), Options{Renderer: renderer}))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		r := &bracketRenderer{}
		root, out := newRoot(t, r)
		root.SetArgs([]string{"help", "modules"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "[Modules are found on module paths]", out.String())
		assert.Equal(t, []string{".txt"}, r.formats)
	})

	t.Run("topic index", func(t *testing.T) {
		root, out := newRoot(t, nil)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "General topics:\n  locations\n  modules\n  order\n")
		assert.Contains(t, out.String(), "Option topics:\n  --patch-module\n")
		assert.Contains(t, out.String(), "Use 'tool help <topic>'")
	})

	t.Run("command", func(t *testing.T) {
		root, out := newRoot(t, nil)
		root.SetArgs([]string{"help", "list"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "List things")
	})
}

func TestGlamourRendererPassesPlainText(t *testing.T) {
	r := &GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
	assert.Contains(t, r.Render("# Title", ".md"), "Title")
}
