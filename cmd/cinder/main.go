package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/cinder/internal/annotate"
	"github.com/alexanderramin/cinder/internal/cli"
	"github.com/alexanderramin/cinder/internal/config"
	"github.com/alexanderramin/cinder/internal/db"
	"github.com/alexanderramin/cinder/internal/httpapi"
	"github.com/alexanderramin/cinder/internal/llm"
	"github.com/alexanderramin/cinder/internal/logging"
	"github.com/alexanderramin/cinder/internal/notify"
	"github.com/alexanderramin/cinder/internal/service"
	"github.com/alexanderramin/cinder/internal/telemetry"
	"github.com/mattn/go-isatty"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Slog

	// SQLite defaults to ~/.cinder/cinder.db
	dsn := cfg.DB.DSN
	if cfg.DB.Driver == string(db.DialectSQLite) && dsn == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dsn = filepath.Join(home, ".cinder", "cinder.db")
	}

	store, err := db.Open(db.Config{Driver: cfg.DB.Driver, DSN: dsn, AuthToken: cfg.DB.AuthToken})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	policy, err := cfg.WorkdayPolicy()
	if err != nil {
		return err
	}

	annotator, err := buildAnnotator(cfg, log)
	if err != nil {
		return err
	}

	recorder, err := buildRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := recorder.Close(context.Background()); err != nil {
			log.Warn("closing metrics exporter", "error", err.Error())
		}
	}()

	registry := notify.NewRegistry(log)

	opts := []service.Option{
		service.WithWorkdayPolicy(policy),
		service.WithObserver(service.NewLogUseCaseObserver(log)),
		service.WithScoreUpdater(service.NewScoreUpdater(registry, recorder, log)),
		service.WithLogger(log),
	}

	repos := service.NewRepos(store.Conn())
	svc := httpapi.Services{
		Users:    service.NewUserService(repos.Users, opts...),
		Activity: service.NewActivityService(repos, annotator, opts...),
		Burnout:  service.NewBurnoutService(repos, opts...),
		Patterns: service.NewPatternService(repos, opts...),
		Import:   service.NewImportService(repos.Users, store.UnitOfWork(), annotator, opts...),
	}

	app := &cli.App{
		Users:       svc.Users,
		Activity:    svc.Activity,
		Burnout:     svc.Burnout,
		Patterns:    svc.Patterns,
		Import:      svc.Import,
		DefaultUser: cfg.User,
		WindowDays:  cfg.Scoring.WindowDays,
	}

	// Forms read stdin; spinners and the watch view draw on stdout.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	app.Serve = func(ctx context.Context, addr string) error {
		if addr == "" {
			addr = cfg.HTTP.Addr
		}
		handler := httpapi.NewHandler(svc, notify.NewWSHandler(registry, log), log,
			httpapi.WithWindowDays(cfg.Scoring.WindowDays))
		srv := httpapi.NewHTTPServer(httpapi.Config{
			Addr:         addr,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		}, httpapi.NewRouter(handler))
		return httpapi.Run(ctx, srv, cfg.HTTP.ShutdownTimeout, log)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// buildAnnotator wires the configured annotation provider.
func buildAnnotator(cfg *config.Config, log *slog.Logger) (annotate.Annotator, error) {
	deps := annotate.Deps{Logger: log}

	switch cfg.Annotator.Provider {
	case annotate.ProviderOllama:
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(log)
		}
		deps.LLM = llm.NewOllamaClient(cfg.LLMSettings(), observer)
	case annotate.ProviderOpenAI:
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))
		deps.OpenAI = &client
		deps.OpenAIModel = cfg.OpenAI.Model
	}

	annotator, err := annotate.New(cfg.Annotator.Provider, deps)
	if err != nil {
		return nil, fmt.Errorf("configuring annotator: %w", err)
	}
	return annotator, nil
}

func buildRecorder(ctx context.Context, cfg *config.Config) (telemetry.Recorder, error) {
	if !cfg.OTEL.Enabled {
		return telemetry.NewNoOpRecorder(), nil
	}
	exporter, err := telemetry.NewExporter(ctx, telemetry.Config{
		Endpoint: cfg.OTEL.Endpoint,
		Enabled:  cfg.OTEL.Enabled,
		Insecure: cfg.OTEL.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring metrics exporter: %w", err)
	}
	return exporter, nil
}
