package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lastnext24/lastnext24-backend-go/internal/config"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/chat"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/summary"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	appHTTP "github.com/lastnext24/lastnext24-backend-go/internal/handler/http"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cache"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cron"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/database"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/jwt"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/kv"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/llm"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/sse"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/storage"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/whisper"
	"github.com/lastnext24/lastnext24-backend-go/internal/repository/kvstore"
	aggregationService "github.com/lastnext24/lastnext24-backend-go/internal/service/aggregation"
	chatService "github.com/lastnext24/lastnext24-backend-go/internal/service/chat"
	organizationService "github.com/lastnext24/lastnext24-backend-go/internal/service/organization"
	reportService "github.com/lastnext24/lastnext24-backend-go/internal/service/report"
	sessionService "github.com/lastnext24/lastnext24-backend-go/internal/service/session"
	summaryService "github.com/lastnext24/lastnext24-backend-go/internal/service/summary"
	transcriptionService "github.com/lastnext24/lastnext24-backend-go/internal/service/transcription"
	"github.com/lastnext24/lastnext24-backend-go/internal/service/visibility"
	"github.com/redis/go-redis/v9"
)

const (
	appName    = "lastnext24"
	appVersion = "v1.0.0"

	chatCacheTTL       = 5 * time.Minute
	summaryCacheTTL    = 2 * time.Minute
	transcriptCacheTTL = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, blobs, filesDir, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	dir := fixtures.Directory()
	if err := dir.Validate(); err != nil {
		slog.Warn("Organization fixture has structural problems", "error", err)
	}

	hub := sse.NewHub()
	defer hub.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	// Upstream clients stay nil without a key; their endpoints answer 503
	var completer llm.Completer
	var transcriber transcriptionService.Transcriber
	if llm.Configured(cfg.OpenAI.APIKey) {
		client, err := llm.NewOpenAIClient(llm.Config{
			APIKey:     cfg.OpenAI.APIKey,
			BaseURL:    cfg.OpenAI.BaseURL,
			Model:      cfg.OpenAI.ChatModel,
			Timeout:    cfg.OpenAI.Timeout,
			MaxRetries: cfg.OpenAI.MaxRetries,
		})
		if err != nil {
			return err
		}
		completer = client
		transcriber = whisper.NewClient(whisper.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.TranscribeModel,
			Timeout: cfg.OpenAI.Timeout,
		})
	} else {
		slog.Warn("OPENAI_API_KEY not configured, chat, summarize and transcribe will answer 503")
	}

	var (
		chatCache       *cache.Cache[chat.ChatResponse]
		summaryCache    *cache.Cache[summary.SummarizeResponse]
		transcriptCache *cache.Cache[string]
	)
	if cfg.Cache.Enabled {
		if chatCache, err = cache.New[chat.ChatResponse](cfg.Cache.MaxItems, chatCacheTTL); err != nil {
			return err
		}
		defer chatCache.Close()
		if summaryCache, err = cache.New[summary.SummarizeResponse](cfg.Cache.MaxItems, summaryCacheTTL); err != nil {
			return err
		}
		defer summaryCache.Close()
		if transcriptCache, err = cache.New[string](cfg.Cache.MaxItems, transcriptCacheTTL); err != nil {
			return err
		}
		defer transcriptCache.Close()
	}

	reportRepo := kvstore.NewReportRepository(store)
	source := reportService.NewMergedSource(fixtures.DemoReports(), reportRepo)
	resolver := visibility.NewResolver(dir)

	reportSvc := reportService.NewReportService(reportRepo, blobs, dir, hub)
	orgSvc := organizationService.NewOrganizationService(dir, fixtures.Projects(), source)
	summarySvc := summaryService.NewSummaryService(completer, summaryCache)
	aggregationSvc := aggregationService.NewAggregationService(summarySvc, cfg.Aggregation.AITimeout)
	chatSvc := chatService.NewChatService(resolver, dir, source, completer, chatCache)
	transcriptionSvc := transcriptionService.NewTranscriptionService(transcriber, transcriptCache, cfg.OpenAI.DemoDelay)
	sessionSvc := sessionService.NewSessionService(dir, JWTService)

	scheduler := cron.NewScheduler(cfg.Cron.JobTimeout)
	cron.NewDigestJobs(dir, orgSvc, hub, aggregationService.ReportingRate).RegisterJobs(scheduler, cfg.Cron.DigestInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Session:      appHTTP.NewSessionHandler(sessionSvc),
		Report:       appHTTP.NewReportHandler(reportSvc, orgSvc, source, resolver, dir),
		Organization: appHTTP.NewOrganizationHandler(orgSvc),
		Aggregation:  appHTTP.NewAggregationHandler(aggregationSvc, orgSvc),
		Chat:         appHTTP.NewChatHandler(chatSvc),
		Summarize:    appHTTP.NewSummarizeHandler(summarySvc),
		Transcribe:   appHTTP.NewTranscribeHandler(transcriptionSvc),
		Health:       appHTTP.NewHealthHandler(cfg.OpenAI.APIKey, cfg.Storage.Backend),
		Events:       appHTTP.NewEventsHandler(hub, JWTService),
	}, appHTTP.RouterOptions{
		Logger:      logger,
		CORSOrigins: cfg.App.CORSOrigins,
		FilesDir:    filesDir,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	// Streams never finish on their own, end them before draining
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStorage builds the report store for the configured backend and the blob
// storage for audio. filesDir is non-empty when blobs live on local disk.
func openStorage(ctx context.Context, cfg *config.Config) (kv.Store, storage.FileStorage, string, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		return kvstore.NewMemoryStore(), storage.NewMemoryStorage(), "", nil
	}

	blobsDir := filepath.Join(cfg.Storage.BasePath, "audio")
	blobs, err := storage.NewLocalStorage(blobsDir, cfg.Storage.BaseURL)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	switch cfg.Storage.Backend {
	case config.StorageLocal:
		files, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return kvstore.NewFileStore(files), blobs, blobsDir, nil

	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
		})
		if err != nil {
			return nil, nil, "", fmt.Errorf("error connecting to database: %w", err)
		}
		if err := kvstore.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, "", err
		}
		return &closingStore{Store: kvstore.NewPostgresStore(db), close: db.Close}, blobs, blobsDir, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, "", fmt.Errorf("error connecting to redis: %w", err)
		}
		return kvstore.NewRedisStore(client), blobs, blobsDir, nil
	}
	return nil, nil, "", fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

// closingStore releases the postgres pool along with the store
type closingStore struct {
	kv.Store
	close func()
}

func (s *closingStore) Close() error {
	err := s.Store.Close()
	s.close()
	return err
}
