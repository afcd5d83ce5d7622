package views

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/oliverisaac/notebook/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Untitled Note", DisplayTitle(""))
	assert.Equal(t, "Groceries", DisplayTitle("Groceries"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "No content...", Preview(""))
	assert.Equal(t, "short", Preview("short"))

	exact := strings.Repeat("a", PreviewLength)
	assert.Equal(t, exact, Preview(exact))

	long := strings.Repeat("é", PreviewLength+5)
	got := Preview(long)
	assert.Equal(t, strings.Repeat("é", PreviewLength)+"...", got)
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 1, 15, 4, 0, 0, time.Local)
	assert.Equal(t, "Mar 1, 2024, 03:04 PM", FormatDate(ts))
}

func TestTemplatesRender(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	user := types.User{Email: "ann@example.com"}
	data := types.HomePageData{
		SearchTerm: "milk",
		Toasts:     []types.Toast{{Title: "Note created!", Description: "Your new note has been saved."}},
	}
	data.WithUser(user).WithNotes([]types.Note{{ID: "n1", Title: "", Content: "Milk, eggs"}})

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index", data))
	out := buf.String()
	assert.Contains(t, out, "Untitled Note")
	assert.Contains(t, out, "Milk, eggs")
	assert.Contains(t, out, "Note created!")
	assert.Contains(t, out, `/notes/n1/edit`)

	buf.Reset()
	empty := types.HomePageData{SearchTerm: "bread"}
	empty.WithUser(user)
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index", empty))
	assert.Contains(t, buf.String(), "No notes found")
	assert.Contains(t, buf.String(), `No notes match "bread"`)

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "editor", types.EditorPageData{
		Heading: "Edit Note",
		Action:  "/notes/n1",
		Title:   "Groceries",
	}))
	assert.Contains(t, buf.String(), "Edit Note")
	assert.Contains(t, buf.String(), `action="/notes/n1"`)
	assert.Contains(t, buf.String(), "disabled")
}

var actionButton = regexp.MustCompile(`<button type="submit" name="action" value="([a-z]+)"`)

func TestEditorDefaultButtonSaves(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "editor", types.EditorPageData{
		Heading: "New Note",
		Action:  "/notes",
		Title:   "Groceries",
		CanSave: true,
	}))

	// Implicit submission (Enter in a field) uses the first submit button.
	buttons := actionButton.FindAllStringSubmatch(buf.String(), -1)
	require.Len(t, buttons, 2)
	assert.Equal(t, "save", buttons[0][1])
	assert.Equal(t, "cancel", buttons[1][1])
}

func TestWithCSRF(t *testing.T) {
	base, err := Parse()
	require.NoError(t, err)

	for _, token := range []string{"tok-a", "tok-b"} {
		tmpl, err := WithCSRF(base, token)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, tmpl.ExecuteTemplate(&buf, "editor", types.EditorPageData{Heading: "New Note", Action: "/notes"}))
		assert.Contains(t, buf.String(), `<input type="hidden" name="_csrf" value="`+token+`">`)

		buf.Reset()
		data := types.HomePageData{}
		data.WithUser(types.User{Email: "ann@example.com"}).WithNotes([]types.Note{{ID: "n1", Title: "t"}})
		require.NoError(t, tmpl.ExecuteTemplate(&buf, "index", data))
		assert.Equal(t, 2, strings.Count(buf.String(), `name="_csrf" value="`+token+`"`))
	}
}
