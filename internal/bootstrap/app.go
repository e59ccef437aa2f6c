package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "humanizer-backend/internal/auth"
	"humanizer-backend/internal/contact"
	"humanizer-backend/internal/dashboard"
	"humanizer-backend/internal/documents"
	"humanizer-backend/internal/humanizations"
	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/payments"
	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/queue"
	"humanizer-backend/internal/services/health"
	"humanizer-backend/internal/shared/config"
	"humanizer-backend/internal/shared/server"
	"humanizer-backend/internal/shared/storage/db"
	"humanizer-backend/internal/shared/storage/object"
	localstore "humanizer-backend/internal/shared/storage/object/local"
	s3store "humanizer-backend/internal/shared/storage/object/s3"
	"humanizer-backend/internal/shared/telemetry"
	"humanizer-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	Humanizer  humanize.Humanizer
	Strategies []string

	ProfilesService      *profiles.Service
	HumanizationsService *humanizations.Service
	PaymentsService      *payments.Service
	ContactService       *contact.Service
	DocumentsService     *documents.Service
	DashboardService     *dashboard.Service
	UsersService         *users.Service
	GoogleAuth           *googleauth.GoogleService
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	return BuildContext(context.Background(), cfg)
}

func BuildContext(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.Configure("humanizer-api", cfg.LogLevel)

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	humanizer, strategies, err := BuildHumanizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("build humanizer: %w", err)
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		Queue:      queueClient,
		Humanizer:  humanizer,
		Strategies: strategies,
	}
	buildServices(app)

	deps := server.RouterDeps{
		Config:               cfg,
		FunctionHandler:      humanize.NewFunctionHandler(humanizer),
		HumanizationsHandler: humanizations.NewHandler(app.HumanizationsService),
		ProfilesHandler:      profiles.NewHandler(app.ProfilesService),
		PaymentsHandler:      payments.NewHandler(app.PaymentsService),
		ContactHandler:       contact.NewHandler(app.ContactService),
		DocumentHandler:      documents.NewHandler(app.DocumentsService),
		DashboardHandler:     dashboard.NewHandler(app.DashboardService),
		UserHandler:          users.NewHandler(app.UsersService, app.ProfilesService),
		GoogleAuth:           app.GoogleAuth,
		Health:               health.NewService(sqlDB, store.Provider(), strategies),
	}
	if local, ok := store.(*localstore.Store); ok {
		deps.FilesDir = local.Dir()
	}
	app.Router = server.NewRouter(deps)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        cfg.Env,
		"database":   sqlDB != nil,
		"storage":    store.Provider(),
		"queue":      queueClient != nil,
		"strategies": strings.Join(strategies, ","),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID, cfg.S3PublicURL)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.ExtractQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.ExtractQueueURL)
}

func buildServices(app *App) {
	var (
		profileStore profiles.Store
		humanizeRepo humanizations.Repo
		paymentRepo  payments.Repo
		contactRepo  contact.Repo
		docRepo      documents.DocumentsRepo
		userRepo     users.Repo
	)
	if app.DB != nil {
		profileStore = &profiles.PGStore{DB: app.DB}
		humanizeRepo = &humanizations.PGRepo{DB: app.DB}
		paymentRepo = &payments.PGRepo{DB: app.DB}
		contactRepo = &contact.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		profileStore = profiles.NewMemoryStore()
		humanizeRepo = humanizations.NewMemoryRepo()
		paymentRepo = payments.NewMemoryRepo()
		contactRepo = contact.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	profileSvc := profiles.NewService(profileStore)
	humanizeSvc := humanizations.NewService(app.Humanizer, profileSvc, humanizeRepo)
	docSvc := &documents.Service{Store: app.Store, Repo: docRepo}
	if app.Queue != nil {
		docSvc.Queue = app.Queue
	}
	userSvc := users.NewService(userRepo, profileSvc)

	app.ProfilesService = profileSvc
	app.HumanizationsService = humanizeSvc
	app.PaymentsService = payments.NewService(profileSvc, paymentRepo)
	app.ContactService = contact.NewService(contactRepo)
	app.DocumentsService = docSvc
	app.DashboardService = dashboard.NewService(profileSvc, humanizeSvc, docSvc)
	app.UsersService = userSvc
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
}
