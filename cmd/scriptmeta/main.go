// Command scriptmeta hosts the metadata pipeline. By default it serves the
// browser form; with -i it runs an interactive prompt instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scriptmeta/scriptmeta/config"
	"github.com/scriptmeta/scriptmeta/models"
	"github.com/scriptmeta/scriptmeta/server"
	"github.com/scriptmeta/scriptmeta/service"
	"github.com/scriptmeta/scriptmeta/store"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "scriptmeta.yaml", "path to the YAML config file")
	interactive := flag.Bool("i", false, "run the interactive prompt instead of the HTTP server")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := newLLM(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create %s model: %w", cfg.AI.Provider, err)
	}
	model := models.NewLangChainGoModel(llm)

	cache, err := store.Open(cfg.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	svc := service.New(logger, model, cache, cfg.RequiredSections(), cfg.Rules())

	if *interactive {
		return runREPL(ctx, svc)
	}
	return server.New(logger, svc).ListenAndServe(ctx, cfg.Server.Listen)
}

func newLLM(ctx context.Context, cfg *config.Config) (llms.Model, error) {
	switch cfg.AI.Provider {
	case "openai":
		return openai.New(
			openai.WithToken(cfg.AI.APIKey),
			openai.WithModel(cfg.AI.Model),
		)
	case "googleai":
		return googleai.New(ctx,
			googleai.WithAPIKey(cfg.AI.APIKey),
			googleai.WithDefaultModel(cfg.AI.Model),
		)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.AI.Provider)
	}
}
