package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/httpapi"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const shutdownTimeout = 5 * time.Second

func (a *app) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// setup parses args, loads the settings and builds the logger. The returned
// positional arguments follow the flags.
func (a *app) setup(fs *pflag.FlagSet, args []string) (config.AppConfig, *slog.Logger, []string, error) {
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return config.AppConfig{}, nil, nil, exitError{code: 0}
		}
		return config.AppConfig{}, nil, nil, exitError{code: 2}
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return config.AppConfig{}, nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return config.AppConfig{}, nil, nil, err
	}
	return cfg, logger, fs.Args(), nil
}

func readConfigFile(path string) (layout.FormConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.FormConfig{}, err
	}
	return orchestrator.ParseConfig(data, layout.FormatFromPath(path))
}

func singleArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one %s argument, got %d", what, len(args))
	}
	return args[0], nil
}

func (a *app) serve(args []string) error {
	fs := a.flagSet("serve")
	formFile := fs.String("form", "", "form config file loaded into the builder at startup")
	cfg, logger, _, err := a.setup(fs, args)
	if err != nil {
		return err
	}

	selector := orchestrator.NewManifestSelector(orchestrator.DefaultManifest())
	orch := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithBuilder(builder.NewSession(
			builder.WithLogger(logger),
			builder.WithUndoDepth(cfg.History.UndoDepth),
		)),
		orchestrator.WithDefaultRenderer(cfg.Renderer.Default),
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
	)

	if *formFile != "" {
		form, err := readConfigFile(*formFile)
		if err != nil {
			return fmt.Errorf("load %s: %w", *formFile, err)
		}
		if _, err := orch.Builder().Load(form); err != nil {
			return fmt.Errorf("load %s: %w", *formFile, err)
		}
		logger.Info("form loaded", slog.String("file", *formFile), slog.String("label", form.Label))
	}

	metrics := httpapi.NewMetrics()
	server := httpapi.NewServer(
		[]httpapi.Controller{
			httpapi.NewFormController(orch, metrics),
			httpapi.NewPreviewController(orch, metrics),
			httpapi.NewSubmissionController(orch),
		},
		httpapi.WithAddr(cfg.HTTP.Addr),
		httpapi.WithAllowedOrigins(cfg.HTTP.CORSOrigins...),
		httpapi.WithServerLogger(logger),
		httpapi.WithMetrics(metrics),
	)
	if cfg.File != "" {
		logger.Info("config file loaded", slog.String("file", cfg.File))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *app) validate(args []string) error {
	fs := a.flagSet("validate")
	_, _, rest, err := a.setup(fs, args)
	if err != nil {
		return err
	}
	path, err := singleArg(rest, "file")
	if err != nil {
		return err
	}

	form, err := readConfigFile(path)
	if err != nil {
		var importErr *orchestrator.ImportError
		if errors.As(err, &importErr) {
			for _, issue := range importErr.Issues {
				fmt.Fprintf(a.stdout, "%s: %s\n", issue.Path, issue.Message)
			}
			return exitError{code: 1}
		}
		return err
	}

	findings := validation.Validate(form)
	if len(findings) == 0 {
		fmt.Fprintf(a.stdout, "%s: ok\n", path)
		return nil
	}
	for _, msg := range validation.Messages(findings) {
		fmt.Fprintln(a.stdout, msg)
	}
	return exitError{code: 1}
}

func (a *app) fill(args []string) error {
	fs := a.flagSet("fill")
	format := fs.String("format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	_, logger, rest, err := a.setup(fs, args)
	if err != nil {
		return err
	}
	path, err := singleArg(rest, "file")
	if err != nil {
		return err
	}
	form, err := readConfigFile(path)
	if err != nil {
		return err
	}
	if findings := validation.Validate(form); len(findings) > 0 {
		for _, msg := range validation.Messages(findings) {
			fmt.Fprintln(a.stderr, msg)
		}
		return exitError{code: 1}
	}

	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(a.stderr)
	}
	var collected layout.Values
	terminal, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			collected = layout.Values(values).Clone()
			return values, nil
		}),
	)
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(terminal)

	orch := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithBuilder(builder.NewSession(builder.WithLogger(logger), builder.WithInitialConfig(form))),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(tui.Name),
	)
	session, err := orch.OpenPreview(render.Create{})
	if err != nil {
		return err
	}

	out, err := orch.Render(context.Background(), tui.Name, session.Plan(), render.RenderOptions{})
	if err != nil {
		return err
	}
	if _, err := session.Submit(collected); err != nil {
		fields := render.ErrorsFrom(err)
		if fields == nil {
			return err
		}
		for _, name := range form.FieldNames() {
			for _, msg := range fields[name] {
				fmt.Fprintf(a.stderr, "%s: %s\n", name, msg)
			}
		}
		return exitError{code: 1}
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}

func (a *app) export(args []string) error {
	fs := a.flagSet("export")
	valuesFile := fs.String("values", "", "JSON or YAML file holding the submitted values")
	format := fs.String("format", "text", "export format (text, html)")
	output := fs.String("output", "", "write to this file, or to the export file name when set to '.'")
	_, logger, rest, err := a.setup(fs, args)
	if err != nil {
		return err
	}
	path, err := singleArg(rest, "file")
	if err != nil {
		return err
	}
	if *valuesFile == "" {
		return errors.New("--values is required")
	}

	form, err := readConfigFile(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(*valuesFile)
	if err != nil {
		return err
	}
	values, err := layout.DecodeValues(layout.FormatFromPath(*valuesFile), data)
	if err != nil {
		return err
	}

	orch := orchestrator.New(orchestrator.WithLogger(logger))
	id := orch.History().Add(form, values)
	artifact, err := orch.Export(id, *format)
	if err != nil {
		return err
	}

	switch *output {
	case "":
		_, err = a.stdout.Write(artifact.Body)
		return err
	case ".":
		*output = artifact.FileName
	}
	if err := os.WriteFile(*output, artifact.Body, 0o644); err != nil {
		return err
	}
	logger.Info("export written", slog.String("file", *output), slog.String("format", *format))
	return nil
}

func (a *app) schema(args []string) error {
	fs := a.flagSet("schema")
	format := fs.String("format", "json", "document format (json, yaml)")
	_, _, rest, err := a.setup(fs, args)
	if err != nil {
		return err
	}
	path, err := singleArg(rest, "file")
	if err != nil {
		return err
	}
	encoding, err := layout.ParseFormat(*format)
	if err != nil || encoding == layout.FormatMsgpack {
		return fmt.Errorf("format must be json or yaml, got %q", *format)
	}

	form, err := readConfigFile(path)
	if err != nil {
		return err
	}
	out, err := openapi.Encode(openapi.Document(form), encoding)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}
