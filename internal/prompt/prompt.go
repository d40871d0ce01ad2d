// Package prompt содержит интерактивные опросы команд на huh.
package prompt

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/huh"

	"clikit/internal/executor"
	"clikit/internal/modules/scaffold"
	"clikit/internal/validate"
)

// Streams потоки формы; nil означает терминал процесса.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

// Init возвращает опрос для `clikit init`. Поля, уже заданные флагами,
// служат значениями по умолчанию.
func Init(templates []string, streams Streams) executor.PromptFunc[scaffold.Options] {
	return func(ctx context.Context, opts scaffold.Options) (scaffold.Options, error) {
		answers := defaults(opts, templates)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Project name").
					Value(&answers.Name).
					Validate(requireText("project name is required")),
				huh.NewSelect[string]().
					Title("Template").
					Options(huh.NewOptions(templates...)...).
					Value(&answers.Template),
				huh.NewInput().
					Title("Module path").
					Placeholder("example.com/" + answers.Name).
					Value(&answers.Module),
				huh.NewConfirm().
					Title("Overwrite existing files?").
					Value(&answers.Force),
			),
		)
		if streams.In != nil {
			form = form.WithInput(streams.In)
		}
		if streams.Out != nil {
			form = form.WithOutput(streams.Out)
		}
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return opts, errors.New("aborted by user")
			}
			return opts, err
		}
		return answers, nil
	}
}

// defaults заполняет начальные ответы формы.
func defaults(opts scaffold.Options, templates []string) scaffold.Options {
	out := opts
	if out.Template == "" || !slices.Contains(templates, out.Template) {
		out.Template = ""
		if len(templates) > 0 {
			out.Template = templates[0]
		}
	}
	return out
}

func requireText(message string) func(string) error {
	return func(s string) error {
		if !validate.IsNonEmptyString(s) {
			return errors.New(message)
		}
		return nil
	}
}
