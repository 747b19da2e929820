package view

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "420.00", Money(42000))
	assert.Equal(t, "0.05", Money(5))
	assert.Equal(t, "-1.50", Money(-150))
	assert.Equal(t, "0.00", Money(0))
}

func TestEngineRendersNamedTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.tmpl": {Data: []byte(`{{define "greeting"}}<p>{{.Name}} owes {{money .Amount}}</p>{{end}}`)},
	}

	engine, err := NewEngine(fsys)
	require.NoError(t, err)

	html, err := engine.Render("greeting", map[string]any{"Name": "Иван", "Amount": int64(24050)})
	require.NoError(t, err)
	assert.Equal(t, "<p>Иван owes 240.50</p>", string(html))

	_, err = engine.Render("missing", nil)
	assert.Error(t, err)
}

func TestEngineRequiresTemplates(t *testing.T) {
	_, err := NewEngine(fstest.MapFS{})
	assert.Error(t, err)
}
