package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/layout"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/nav"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
)

// Engine renders the embedded template set. It is constructed once at
// startup and passed by reference into the handlers that need it; nothing
// here lives in ambient package state.
type Engine struct {
	tmpl *template.Template
}

// NewEngine discovers and parses every .tmpl file in fsys.
func NewEngine(fsys fs.FS) (*Engine, error) {
	funcMap := template.FuncMap{
		"money": Money,
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("view: no templates found")
	}

	tmpl, err := template.New("_root").Funcs(funcMap).ParseFS(fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// Render executes a named template into a fragment. Section content rendered
// this way is already escaped, so returning template.HTML is safe.
func (e *Engine) Render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("view: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Execute writes a named template directly to w, used for the page shells.
func (e *Engine) Execute(w io.Writer, name string, data any) error {
	if err := e.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("view: execute %s: %w", name, err)
	}
	return nil
}

// Money formats minor currency units with two decimals ("42000" -> "420.00").
func Money(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// PublicShell is the view model for the public site wrapper.
type PublicShell struct {
	Lang         string
	Title        string
	Brand        string
	Tagline      string
	FooterRights string
	Nav          []nav.RenderedItem
	LocaleLinks  []nav.LocaleLink
	CTA          *layout.FloatingCTA
	Content      template.HTML
}

// AdminShell is the view model for the bare back-office wrapper.
type AdminShell struct {
	Lang         string
	Title        string
	Heading      string
	UserEmail    string
	LogoutAction string
	LogoutLabel  string
	CSRFToken    string
	Flashes      []session.Flash
	Content      template.HTML
}
