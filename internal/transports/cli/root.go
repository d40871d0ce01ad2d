package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"clikit/internal/app"
	"clikit/internal/config"
	"clikit/internal/core"
	"clikit/internal/executor"
	"clikit/internal/modules/host"
	"clikit/internal/modules/scaffold"
	"clikit/internal/modules/tasks"
	"clikit/internal/prompt"
	"clikit/internal/storage"
)

// New создает корневую CLI-команду.
func New(version string) *cobra.Command {
	var flags app.Options
	root := &cobra.Command{
		Use:           "clikit",
		Short:         "Генератор и исполнитель задач Go-проектов",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "подробный вывод и потоки подпроцессов")
	pf.StringVar(&flags.ProjectRoot, "project-root", "", "корень проекта (по умолчанию текущий каталог)")
	pf.StringVar(&flags.ConfigPath, "config", "", "путь к clikit.yaml")
	pf.StringVar(&flags.Preset, "preset", "", "имя пресета конфигурации")
	pf.StringVar(&flags.LogFormat, "log-format", "", "формат логов: console или json")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newDoctorCmd(&flags))
	root.AddCommand(newInitCmd(&flags))
	root.AddCommand(newRunCmd(&flags))
	root.AddCommand(newJournalCmd(&flags))

	return root
}

func newApp(cmd *cobra.Command, flags *app.Options) (*app.App, error) {
	return app.NewApp(cmd.Context(), *flags, cmd.ErrOrStderr())
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version)
		},
	}
}

func newDoctorCmd(flags *app.Options) *cobra.Command {
	var skipToolchain bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Проверить окружение",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			probes := host.Probes{}
			if !skipToolchain {
				toolchain := host.DefaultToolchain
				probes.Toolchain = &toolchain
			}
			report, err := host.Doctor(ctx, a.CommandContext(args), probes)
			return writeResponse(cmd.OutOrStdout(), report, err)
		},
	}
	cmd.Flags().BoolVar(&skipToolchain, "skip-toolchain", false, "не проверять наличие go")
	return cmd
}

func newInitCmd(flags *app.Options) *cobra.Command {
	var opts scaffold.Options
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Создать проект из шаблона",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Name = args[0]
			}
			opts.ForceSet = cmd.Flags().Changed("force")
			opts.DryRunSet = cmd.Flags().Changed("dry-run")
			opts.ConfigPath = a.Config
			opts.Preset = a.Preset
			deps := scaffold.Deps{
				Templates:   a.Templates,
				Prompt:      prompt.Init(a.Templates.Names(), prompt.Streams{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}),
				OpenJournal: a.OpenJournal,
			}
			report, err := scaffold.Run(cmd.Context(), a.CommandContext(args), deps, opts)
			return writeResponse(cmd.OutOrStdout(), report, err)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.Template, "template", "t", "", "имя шаблона")
	f.StringVar(&opts.Module, "module", "", "путь Go-модуля")
	f.BoolVar(&opts.DryRun, "dry-run", false, "показать изменения без записи")
	f.BoolVarP(&opts.Interactive, "interactive", "i", false, "запросить недостающие параметры")
	f.BoolVarP(&opts.SkipPrompts, "yes", "y", false, "не задавать вопросов")
	f.BoolVar(&opts.Force, "force", false, "писать в существующий каталог")
	return cmd
}

func newRunCmd(flags *app.Options) *cobra.Command {
	var batchSize int
	cmd := &cobra.Command{
		Use:   "run [task...]",
		Short: "Выполнить задачи из конфига",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			results, err := tasks.Run(cmd.Context(), a.CommandContext(args), tasks.Options{
				Names:      args,
				BatchSize:  batchSize,
				ConfigPath: a.Config,
				Preset:     a.Preset,
			})
			return writeResponse(cmd.OutOrStdout(), results, err)
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "размер пакета (по умолчанию из конфига)")
	return cmd
}

func newJournalCmd(flags *app.Options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal [run-id]",
		Short: "Показать журнал изменений",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cfg, err := a.LoadConfig(ctx)
			if err != nil {
				return writeResponse(cmd.OutOrStdout(), nil, err)
			}
			if !cfg.Journal.Enabled {
				return writeResponse(cmd.OutOrStdout(), nil, core.New(core.CodeConfig, "Journal is disabled; set journal.enabled in "+config.DefaultFile))
			}
			st, err := a.OpenJournal(cfg)
			if err != nil {
				return writeResponse(cmd.OutOrStdout(), nil, core.Wrap(core.CodeOperation, "Journal unavailable", err))
			}
			defer st.Close()

			var data any
			if len(args) == 1 {
				data, err = st.Entries(ctx, storage.JournalQuery{RunID: args[0], Limit: limit})
			} else {
				data, err = st.Runs(ctx, limit)
			}
			if err != nil {
				err = core.Wrap(core.CodeOperation, "Failed to read journal", err)
			}
			return writeResponse(cmd.OutOrStdout(), data, err)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "максимум записей")
	return cmd
}

// writeResponse печатает core.Response в JSON и возвращает исходную ошибку.
func writeResponse(w io.Writer, data any, err error) error {
	resp := core.OK(data)
	if err != nil {
		resp = core.Failed(err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(resp); encErr != nil {
		return encErr
	}
	return err
}

// compile-time проверка, что опции init пригодны для исполнителей.
var (
	_ executor.Promptable[scaffold.Options] = scaffold.Options{}
	_ executor.DryRunner                    = scaffold.Options{}
)
