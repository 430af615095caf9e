package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/neurodoc-ai/neurodoc/internal/ai"
	"github.com/neurodoc-ai/neurodoc/internal/config"
	"github.com/neurodoc-ai/neurodoc/internal/embedcache"
	"github.com/neurodoc-ai/neurodoc/internal/filestore"
	"github.com/neurodoc-ai/neurodoc/internal/handler"
	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/job"
	"github.com/neurodoc-ai/neurodoc/internal/repo"
	"github.com/neurodoc-ai/neurodoc/internal/schedule"
	"github.com/neurodoc-ai/neurodoc/internal/service"
	"github.com/neurodoc-ai/neurodoc/internal/websearch"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "neurodoc",
		Short: "neurodoc backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run neurodoc server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("embed_provider", cfg.AI.EmbedProvider),
	)

	messageRepo := repo.NewMessageRepo(db)
	cacheRepo := repo.NewEmbeddingCacheRepo(db)

	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	embedProvider, err := ai.NewEmbedProvider(cfg.AI.EmbedProvider, cfg.AI.EmbedData)
	if err != nil {
		return fmt.Errorf("init embed provider: %w", err)
	}
	generator := ai.NewGenerator(aiProvider, cfg.AI.Model)
	if cfg.AI.FallbackProvider != "" {
		fallbackProvider, err := ai.NewProvider(cfg.AI.FallbackProvider, cfg.AI.FallbackData)
		if err != nil {
			return fmt.Errorf("init fallback ai provider: %w", err)
		}
		generator = ai.NewGroupGenerator([]ai.GeneratorEntry{
			{Name: cfg.AI.Provider, Generator: generator},
			{Name: cfg.AI.FallbackProvider, Generator: ai.NewGenerator(fallbackProvider, cfg.AI.FallbackModel)},
		})
	}
	generator = ai.WithTimeout(generator, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	embedder := embedcache.WrapLRU(
		embedcache.WrapDB(ai.NewEmbedder(embedProvider, cfg.AI.EmbedModel), cacheRepo),
		cfg.EmbedCache.LRUSize,
		time.Duration(cfg.EmbedCache.LRUTTLMinutes)*time.Minute,
	)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	chunker, err := index.NewChunker(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("init chunker: %w", err)
	}
	session := index.NewSession()

	var searcher service.Searcher
	if cfg.Search.Enable {
		searcher = websearch.New(websearch.Config{
			BaseURL:        cfg.Search.BaseURL,
			TimeoutSeconds: cfg.Search.TimeoutSeconds,
			MaxTopics:      cfg.Search.MaxTopics,
		})
	}

	ingestService := service.NewIngestService(store, chunker, embedder, session, messageRepo)
	chatService := service.NewChatService(session, embedder, generator, messageRepo, searcher)
	mindMapService := service.NewMindMapService(session, embedder, generator)
	interviewService := service.NewInterviewService(session, embedder, generator, messageRepo)

	router := handler.NewRouter(
		handler.RouterOptions{
			CORSOrigins:      cfg.CORSOrigins,
			RateLimitSeconds: cfg.RateLimitSeconds,
		},
		handler.NewUploadHandler(ingestService),
		handler.NewChatHandler(chatService),
		handler.NewMindMapHandler(mindMapService),
		handler.NewInterviewHandler(interviewService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewEmbeddingCacheCleanupJob(cacheRepo, cfg.EmbedCache.MaxAgeDays), cfg.EmbedCache.CleanupCron); err != nil {
		return fmt.Errorf("schedule cleanup job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
