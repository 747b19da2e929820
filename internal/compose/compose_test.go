package compose

import (
	"errors"
	"fmt"
	"html/template"
	"testing"
)

type fakeRenderer struct {
	fail string
}

func (f fakeRenderer) Render(name string, data any) (template.HTML, error) {
	if name == f.fail {
		return "", errors.New("boom")
	}
	return template.HTML(fmt.Sprintf("<%s:%v>", name, data)), nil
}

func TestPagePreservesDeclarationOrder(t *testing.T) {
	body, err := Page(fakeRenderer{}, []Section{
		{Template: "hero", Data: 1},
		{Template: "cards", Data: 2},
		{Template: "cta", Data: 3},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	want := "<hero:1><cards:2><cta:3>"
	if string(body) != want {
		t.Fatalf("body = %q, want %q", body, want)
	}
}

func TestPagePropagatesRenderErrors(t *testing.T) {
	_, err := Page(fakeRenderer{fail: "cards"}, []Section{
		{Template: "hero"},
		{Template: "cards"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}
