package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/bootstrap"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/config"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/observability/logging"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/observability/metrics"
)

const serviceName = "classifier-worker"

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeClassificationJobs(ctx, func(handlerCtx context.Context, job domain.ClassificationJob) error {
		if !job.EnqueuedAt.IsZero() {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(job.EnqueuedAt))
		}

		classifyCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		workerMetrics.StartJob()
		start := time.Now()
		result, classifyErr := app.Engine.Classify(classifyCtx, job.Text, job.Filename)
		workerMetrics.FinishJob(serviceName, time.Since(start), result, classifyErr)
		if classifyErr != nil {
			return classifyErr
		}

		// The local fallback model only loads when the cascade needed it.
		// Release its memory right away rather than holding it between jobs.
		if result.ModelUsed == domain.ModelFallback {
			if unloadErr := app.LocalModel.Unload(classifyCtx); unloadErr != nil {
				logger.Warn("fallback model unload failed", "error", unloadErr)
			}
		}

		record := &domain.ClassificationRecord{
			ID:               uuid.NewString(),
			DocumentID:       job.DocumentID,
			Filename:         job.Filename,
			Category:         result.DocumentCategory,
			DocType:          result.DocumentType,
			ConfidenceScore:  result.ConfidenceScore,
			ConfidenceLevel:  result.ConfidenceLevel,
			ModelUsed:        result.ModelUsed,
			NeedsHumanReview: result.NeedsHumanReview,
			UncertaintyFlags: result.UncertaintyFlags,
			CreatedAt:        time.Now().UTC(),
		}
		if saveErr := app.Store.SaveResult(classifyCtx, record); saveErr != nil {
			logger.Error("saving classification record failed", "document_id", job.DocumentID, "error", saveErr)
			return saveErr
		}

		logger.Info("document classified",
			"document_id", job.DocumentID,
			"category", record.Category,
			"doc_type", record.DocType,
			"confidence", record.ConfidenceScore,
			"model_used", string(record.ModelUsed),
			"needs_review", record.NeedsHumanReview,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
