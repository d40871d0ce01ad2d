package scaffold

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	tpl := &TextTemplate{ID: "test", Files: map[string]string{"a.txt": "{{.Name}}"}}
	if err := r.Register(tpl); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := r.Lookup("test")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	files, err := got.Render(Data{Name: "demo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(files) != 1 || string(files[0].Content) != "demo" {
		t.Fatalf("unexpected files: %#v", files)
	}
}

func TestDuplicateTemplate(t *testing.T) {
	r := NewRegistry()
	tpl := &TextTemplate{ID: "dup"}
	if err := r.Register(tpl); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(tpl); !errors.Is(err, errTemplateExists) {
		t.Fatalf("expected errTemplateExists, got %v", err)
	}
}

func TestInvalidTemplate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, errInvalidArguments) {
		t.Fatalf("expected errInvalidArguments for nil, got %v", err)
	}
	if err := r.Register(&TextTemplate{}); !errors.Is(err, errInvalidArguments) {
		t.Fatalf("expected errInvalidArguments for empty name, got %v", err)
	}
}

func TestUnknownTemplate(t *testing.T) {
	_, err := NewRegistry().Lookup("none")
	if !errors.Is(err, errUnknownTemplate) {
		t.Fatalf("expected errUnknownTemplate, got %v", err)
	}
}

func TestBuiltins(t *testing.T) {
	r := Builtins()
	if got := r.Names(); !reflect.DeepEqual(got, []string{"basic", "cli"}) {
		t.Fatalf("unexpected builtins: %v", got)
	}
	tpl, _ := r.Lookup("cli")
	files, err := tpl.Render(Data{Name: "tool", Module: "example.com/tool"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := []string{".gitignore", "README.md", "cmd/tool/main.go", "go.mod", "internal/cli/root.go"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("unexpected paths: %v", paths)
	}
}

func TestRenderMissingKey(t *testing.T) {
	tpl := &TextTemplate{ID: "bad", Files: map[string]string{"x": "{{.Nope}}"}}
	if _, err := tpl.Render(Data{}); err == nil {
		t.Fatalf("expected render error")
	}
}
