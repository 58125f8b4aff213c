package renderer

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:embed templates/*.html
var templates embed.FS

var funcs = template.FuncMap{
	// lines escapes s and turns its newlines into <br>.
	"lines": func(s string) template.HTML {
		parts := strings.Split(s, "\n")
		for i, p := range parts {
			parts[i] = template.HTMLEscapeString(p)
		}
		return template.HTML(strings.Join(parts, "<br>"))
	},
}

// PrintHTML writes doc as a standalone HTML page meant to be printed from a
// browser. Every field is escaped.
func PrintHTML(w io.Writer, doc Document) error {
	partials := map[string]string{
		"print_header": "templates/print_header.html",
		"print_items":  "templates/print_items.html",
		"print_totals": "templates/print_totals.html",
	}
	var buf bytes.Buffer
	if err := renderTemplate(&buf, "print", "templates/print.html", partials, doc); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(w io.Writer, templateName, mainFile string, partials map[string]string, data any) error {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return errors.Wrapf(err, "reading main template %q", mainFile)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return errors.Wrapf(err, "parsing main template %q", mainFile)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return errors.Wrapf(err, "reading partial template %q", file)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return errors.Wrapf(err, "parsing partial template %q for %q", file, name)
		}
	}

	if err := tmpl.ExecuteTemplate(w, templateName, data); err != nil {
		return errors.Wrapf(err, "executing template %q", templateName)
	}
	return nil
}
