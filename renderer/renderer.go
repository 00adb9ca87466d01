// Package renderer turns calculation results into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/finkit"
	"github.com/shopspring/decimal"
)

//go:embed *.md
var templates embed.FS

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// undefined formats a value that could not be computed.
func undefined(err error) string {
	return fmt.Sprintf("_undefined (%s)_", err)
}

// orUndefined returns s, or the undefined form of err when err is not nil.
func orUndefined(s fmt.Stringer, err error) string {
	if err != nil {
		return undefined(err)
	}
	return s.String()
}

// bar draws a horizontal bar of width cells out of max.
func bar(value, max float64, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := int(value/max*float64(width) + 0.5)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// money is a shortcut for amounts of the report currency.
type money struct{ currency string }

func (m money) of(v decimal.Decimal) finkit.Money { return finkit.M(v, m.currency) }
