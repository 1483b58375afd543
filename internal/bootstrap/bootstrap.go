package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/config"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/usecase"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/llm/mistralapi"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/llm/ollama"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/llm/zeroshot"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/queue/nats"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/repository/postgres"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/resilience"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/vector/qdrant"
)

// App holds the wired classification worker dependencies.
type App struct {
	Config   config.Config
	Registry *taxonomy.Registry

	Engine     ports.DocumentClassifier
	Queue      *nats.Queue
	Store      ports.ClassificationStore
	LocalModel ports.LocalModel

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	registry, err := loadRegistry(cfg.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewClassificationRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.ModelCallConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init job queue: %w", err)
	}

	primary := ollama.New(ollama.Config{
		BaseURL:    cfg.OllamaURL,
		Model:      cfg.OllamaPrimaryModel,
		EmbedModel: cfg.OllamaEmbedModel,
	}, executor)
	local := ollama.New(ollama.Config{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaFallbackModel,
	}, executor)

	var fallbackAPI ports.CompletionClient
	if cfg.MistralAPIKey != "" {
		fallbackAPI = mistralapi.New(mistralapi.Config{
			BaseURL: cfg.MistralAPIURL,
			APIKey:  cfg.MistralAPIKey,
			Model:   cfg.MistralAPIModel,
		}, executor)
	}

	var zeroShot ports.ZeroShotClassifier
	if cfg.ZeroShotURL != "" {
		zeroShot = zeroshot.New(zeroshot.Config{BaseURL: cfg.ZeroShotURL}, executor)
	}

	var store ports.SimilarityStore
	if cfg.QdrantURL != "" {
		store = qdrant.New(cfg.QdrantURL, executor)
	} else {
		logger.Warn("no qdrant url configured, using in-memory similarity store")
		store = qdrant.NewMemoryStore()
	}

	collections := usecase.Collections{
		Categories: cfg.CategoriesCollection,
		Examples:   cfg.ExamplesCollection,
		Documents:  cfg.DocumentsCollection,
	}

	seeder := usecase.NewSeeder(primary, store, registry, collections, cfg.VectorSize, logger)
	if err := seeder.Seed(ctx); err != nil {
		// The engine degrades to classification without retrieval context,
		// so a failed seed is not fatal.
		logger.Warn("similarity store seeding failed", "error", err)
	}

	retriever := usecase.NewContextRetriever(primary, store, collections, cfg.RetrievalTopK, logger)
	scorer := usecase.NewHeuristicScorer(registry)
	patterns := usecase.NewPatternClassifier(registry)

	cascadeCfg := usecase.DefaultCascadeConfig()
	cascadeCfg.PrimaryThreshold = cfg.PrimaryThreshold
	cascadeCfg.FallbackThreshold = cfg.FallbackThreshold
	cascade := usecase.NewCascade(primary, fallbackAPI, local, patterns, scorer, registry, cascadeCfg, logger)

	validator := usecase.NewValidator(zeroShot, registry, logger)
	combiner := usecase.NewCombiner(scorer, registry, primary, store, collections, usecase.DefaultCombinerConfig(), logger)
	engine := usecase.NewClassificationEngine(retriever, cascade, validator, combiner, patterns, logger)

	return &App{
		Config:     cfg,
		Registry:   registry,
		Engine:     engine,
		Queue:      queue,
		Store:      repo,
		LocalModel: local,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func loadRegistry(path string) (*taxonomy.Registry, error) {
	if path == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(path)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
