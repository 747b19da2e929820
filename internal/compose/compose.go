// Package compose assembles ordered page sections into a page body.
package compose

import (
	"html/template"
	"strings"
)

// Renderer turns a named template and its data into an HTML fragment.
type Renderer interface {
	Render(name string, data any) (template.HTML, error)
}

// Section is one self-contained renderable unit. Data carries everything the
// section needs, localized strings included; sections never reach into
// global state for their own translations.
type Section struct {
	Template string
	Data     any
}

// Page renders sections top to bottom in exactly the declared order and
// concatenates them into the page body.
func Page(r Renderer, sections []Section) (template.HTML, error) {
	var b strings.Builder
	for _, s := range sections {
		fragment, err := r.Render(s.Template, s.Data)
		if err != nil {
			return "", err
		}
		b.WriteString(string(fragment))
	}
	return template.HTML(b.String()), nil
}
