package renderer

import (
	"bytes"
	"html/template"

	"github.com/cockroachdb/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// converter turns markdown views into HTML, with GitHub tables.
var converter = goldmark.New(goldmark.WithExtensions(extension.GFM))

var page = template.Must(template.New("page").Parse(`<html><head><title>{{.Title}}</title>
<style>body{font-family:Arial,Helvetica,sans-serif;padding:20px}table{border-collapse:collapse}th,td{padding:8px;border:1px solid #ddd}</style>
</head><body>
{{.Body}}
</body></html>
`))

// MarkdownToHTML converts a markdown view into a standalone HTML page.
func MarkdownToHTML(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := converter.Convert([]byte(markdown), &body); err != nil {
		return nil, errors.Wrap(err, "converting markdown")
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		return nil, errors.Wrap(err, "rendering page")
	}
	return out.Bytes(), nil
}
