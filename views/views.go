package views

import (
	"embed"
	"html/template"
	"time"
	"unicode/utf8"
)

//go:embed *.html
var FS embed.FS

const (
	PreviewLength = 120
	DateLayout    = "Jan 2, 2006, 03:04 PM"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"displayTitle": DisplayTitle,
		"preview":      Preview,
		"formatDate":   FormatDate,
		"csrfToken":    func() string { return "" },
	}
}

// Parse loads every embedded template.
func Parse() (*template.Template, error) {
	return template.New("views").Funcs(Funcs()).ParseFS(FS, "*.html")
}

// WithCSRF returns a copy of t whose forms carry token. t itself must never be executed.
func WithCSRF(t *template.Template, token string) (*template.Template, error) {
	clone, err := t.Clone()
	if err != nil {
		return nil, err
	}
	return clone.Funcs(template.FuncMap{
		"csrfToken": func() string { return token },
	}), nil
}

func DisplayTitle(title string) string {
	if title == "" {
		return "Untitled Note"
	}
	return title
}

// Preview truncates content to PreviewLength runes.
func Preview(content string) string {
	if content == "" {
		return "No content..."
	}
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	return string([]rune(content)[:PreviewLength]) + "..."
}

func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}
