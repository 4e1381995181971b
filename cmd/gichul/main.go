// Command gichul generates 정보처리기사 실기 practice questions from past exams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/gichul/internal/adapters/driven/ai"
	"github.com/custodia-labs/gichul/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gichul/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/gichul/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gichul/internal/adapters/driving/cli"
	"github.com/custodia-labs/gichul/internal/connectors"
	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/core/services"
	"github.com/custodia-labs/gichul/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configDir, err := file.DefaultDir()
	if err != nil {
		return err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	dataDir := settings.Collection.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	promptStore, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}

	// Without embeddings or a database the settings and version commands
	// still work; index commands report ErrVectorIndexUnavailable.
	var index driven.VectorIndex
	var llm driven.LLMService
	aiServices, err := ai.Init(ctx, *settings)
	if err != nil {
		logger.Warn("%v", err)
	} else {
		defer aiServices.Close()
		llm = aiServices.LLMService

		vi, err := sqlite.Open(dataDir, aiServices.EmbeddingService, sqlite.Config{
			Collection: settings.Collection.Name,
		})
		if err != nil {
			logger.Warn("open vector index: %v", err)
		} else {
			defer vi.Close()
			index = vi
		}
	}

	generator := services.NewGenerator(llm, promptStore, services.GeneratorConfig{
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: settings.LLM.Temperature,
	})
	practice := services.NewPracticeService(index, generator, services.PracticeConfig{
		TopK:         settings.Search.TopK,
		NumQuestions: settings.Generation.NumQuestions,
		Categories:   domain.DefaultCategories(),
	})
	setup := services.NewSetupService(
		connectors.NewFactory(settings.Scraper),
		jsonfile.NewQuestionStore(dataDir),
		jsonfile.NewChunkStore(dataDir),
		index,
	)

	cli.SetServices(practice, setup, settingsService)
	cli.SetVersion(version)
	return cli.Execute(ctx)
}
