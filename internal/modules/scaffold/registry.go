package scaffold

import (
	"errors"
	"fmt"
	"sort"
)

var (
	errTemplateExists   = errors.New("template already registered")
	errUnknownTemplate  = errors.New("unknown template")
	errInvalidArguments = errors.New("invalid arguments")
)

// Registry хранит шаблоны проектов. Передается явно, глобального состояния нет.
type Registry struct {
	templates map[string]Template
}

// NewRegistry создает пустой реестр шаблонов.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register добавляет шаблон; имя должно быть уникальным.
func (r *Registry) Register(t Template) error {
	if t == nil {
		return fmt.Errorf("template is nil: %w", errInvalidArguments)
	}
	name := t.Name()
	if name == "" {
		return fmt.Errorf("template name is empty: %w", errInvalidArguments)
	}
	if _, exists := r.templates[name]; exists {
		return fmt.Errorf("%s: %w", name, errTemplateExists)
	}
	r.templates[name] = t
	return nil
}

// Lookup возвращает шаблон по имени.
func (r *Registry) Lookup(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errUnknownTemplate)
	}
	return t, nil
}

// Names возвращает отсортированный список имен шаблонов.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
