package gotemplate_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-houseprice/pkg/render/template/gotemplate"
)

type greeting struct {
	Name string `json:"name"`
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesToWriters(t *testing.T) {
	engine := newEngine(t)
	var sb strings.Builder

	got, err := engine.RenderTemplate("hello", greeting{Name: "Ada"}, &sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" || sb.String() != got {
		t.Fatalf("unexpected output %q / %q", got, sb.String())
	}
}

func TestEngine_EscapesHTML(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("hello.tpl", map[string]any{"name": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "1-two" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
