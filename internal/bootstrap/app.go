package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	googleauth "ocr-backend/internal/auth"
	"ocr-backend/internal/documents"
	"ocr-backend/internal/explain"
	"ocr-backend/internal/llm"
	"ocr-backend/internal/llm/openai"
	"ocr-backend/internal/ocr"
	"ocr-backend/internal/ocr/tesseract"
	"ocr-backend/internal/shared/config"
	"ocr-backend/internal/shared/storage/db"
	"ocr-backend/internal/shared/storage/object"
	localstore "ocr-backend/internal/shared/storage/object/local"
	s3store "ocr-backend/internal/shared/storage/object/s3"
	"ocr-backend/internal/shared/telemetry"
	"ocr-backend/internal/users"
)

// App holds the wired application dependencies.
type App struct {
	Cfg       config.Config
	DB        *sql.DB
	Users     *users.Service
	Documents *documents.Service
	Explain   *explain.Service
	Google    *googleauth.GoogleService
}

type options struct {
	extractor ocr.Extractor
	llmClient llm.Client
	store     object.ObjectStore
}

// Option overrides a dependency, mainly for tests.
type Option func(*options)

// WithExtractor replaces the OCR engine.
func WithExtractor(e ocr.Extractor) Option {
	return func(o *options) { o.extractor = e }
}

// WithLLMClient replaces the language-model client.
func WithLLMClient(c llm.Client) Option {
	return func(o *options) { o.llmClient = c }
}

// WithObjectStore replaces the object store.
func WithObjectStore(s object.ObjectStore) Option {
	return func(o *options) { o.store = s }
}

// Build wires repositories, services, and external clients from config.
// Postgres is used when DATABASE_URL is set and reachable; otherwise the
// in-memory repositories back the same services.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Error("database unavailable, using in-memory repositories", map[string]any{"error": err.Error()})
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			telemetry.Error("migrations failed, using in-memory repositories", map[string]any{"error": err.Error()})
			conn.Close()
			conn = nil
		}
		sqlDB = conn
	}

	store := o.store
	if store == nil {
		if cfg.ObjectStoreType == "s3" {
			s3, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
			if err != nil {
				return nil, fmt.Errorf("init s3 store: %w", err)
			}
			store = s3
		} else {
			store = localstore.New(cfg.LocalStoreDir)
		}
	}

	extractor := o.extractor
	if extractor == nil {
		extractor = tesseract.New(cfg.OCRLanguages...)
	}

	llmClient := o.llmClient
	if llmClient == nil {
		if cfg.OpenAIAPIKey != "" {
			client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
			if err != nil {
				return nil, fmt.Errorf("init openai client: %w", err)
			}
			llmClient = client
		} else {
			telemetry.Info("OPENAI_API_KEY not set, explanations disabled", nil)
			llmClient = llm.PlaceholderClient{}
		}
	}

	var userRepo users.Repo
	var docRepo documents.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		docRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	docSvc := &documents.Service{
		Store:     store,
		Repo:      docRepo,
		Users:     userSvc,
		Extractor: extractor,
	}
	explainSvc := &explain.Service{Docs: docSvc, LLM: llmClient}
	google := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	return &App{
		Cfg:       cfg,
		DB:        sqlDB,
		Users:     userSvc,
		Documents: docSvc,
		Explain:   explainSvc,
		Google:    google,
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
