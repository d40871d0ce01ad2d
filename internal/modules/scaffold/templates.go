package scaffold

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"text/template"
)

// Data параметры рендеринга шаблона.
type Data struct {
	Name   string
	Module string
}

// File файл, который создаст шаблон; Path относителен каталогу проекта.
type File struct {
	Path    string
	Content []byte
}

// Template описывает генератор файлов проекта.
type Template interface {
	Name() string
	Description() string
	Render(data Data) ([]File, error)
}

// TextTemplate шаблон на text/template; пути тоже шаблонизируются.
type TextTemplate struct {
	ID      string
	Summary string
	Files   map[string]string
}

func (t *TextTemplate) Name() string        { return t.ID }
func (t *TextTemplate) Description() string { return t.Summary }

// Render возвращает файлы, отсортированные по пути.
func (t *TextTemplate) Render(data Data) ([]File, error) {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]File, 0, len(paths))
	for _, p := range paths {
		name, err := execute(t.ID+":path:"+p, p, data)
		if err != nil {
			return nil, err
		}
		body, err := execute(t.ID+":"+p, t.Files[p], data)
		if err != nil {
			return nil, err
		}
		out = append(out, File{Path: path.Clean(string(name)), Content: body})
	}
	return out, nil
}

func execute(name, text string, data Data) ([]byte, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Builtins возвращает реестр со встроенными шаблонами.
func Builtins() *Registry {
	r := NewRegistry()
	for _, t := range []Template{basicTemplate(), cliTemplate()} {
		// имена встроенных шаблонов уникальны
		_ = r.Register(t)
	}
	return r
}

func basicTemplate() *TextTemplate {
	return &TextTemplate{
		ID:      "basic",
		Summary: "Go module with a single main package",
		Files: map[string]string{
			"go.mod":     "module {{.Module}}\n\ngo 1.24\n",
			"main.go":    "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"{{.Name}}\")\n}\n",
			"README.md":  "# {{.Name}}\n",
			".gitignore": "/bin/\n",
		},
	}
}

func cliTemplate() *TextTemplate {
	return &TextTemplate{
		ID:      "cli",
		Summary: "Cobra command-line tool with cmd/ and internal/ layout",
		Files: map[string]string{
			"go.mod":                "module {{.Module}}\n\ngo 1.24\n\nrequire github.com/spf13/cobra v1.8.1\n",
			"cmd/{{.Name}}/main.go": "package main\n\nimport (\n\t\"os\"\n\n\t\"{{.Module}}/internal/cli\"\n)\n\nfunc main() {\n\tif err := cli.New().Execute(); err != nil {\n\t\tos.Exit(1)\n\t}\n}\n",
			"internal/cli/root.go":  "package cli\n\nimport \"github.com/spf13/cobra\"\n\n// New создает корневую команду.\nfunc New() *cobra.Command {\n\treturn &cobra.Command{Use: \"{{.Name}}\"}\n}\n",
			"README.md":             "# {{.Name}}\n",
			".gitignore":            "/bin/\n",
		},
	}
}
