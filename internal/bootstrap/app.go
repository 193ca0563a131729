package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/safehaven-ai/safehaven-backend/config"
	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/auth"
	authmw "github.com/safehaven-ai/safehaven-backend/internal/auth/middleware"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/cache"
	catalogdomain "github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
	cataloghttp "github.com/safehaven-ai/safehaven-backend/internal/catalog/http"
	catalogrepo "github.com/safehaven-ai/safehaven-backend/internal/catalog/repository"
	catalogservice "github.com/safehaven-ai/safehaven-backend/internal/catalog/service"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/static"
	inspectionhttp "github.com/safehaven-ai/safehaven-backend/internal/inspection/http"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/media"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/repository"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/service"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/sink"
	"github.com/safehaven-ai/safehaven-backend/internal/scheduler"
	"github.com/safehaven-ai/safehaven-backend/internal/shell"
	"github.com/safehaven-ai/safehaven-backend/internal/storage/postgres"
)

const ServiceName = "safehaven-backend"

// App holds the wired server and the connections it owns.
type App struct {
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler
	Wizard    *service.WizardService
	Catalog   *cache.Provider

	closers []func()
}

// New connects every configured backend and wires the HTTP surface. On error
// everything opened so far is closed again.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	app := &App{}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	app.onClose(func() { _ = rdb.Close() })

	var (
		pool  *pgxpool.Pool
		sqlDB *sql.DB
	)
	if cfg.Database.DSN != "" {
		pool, err = OpenDB(ctx, DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			return nil, err
		}
		app.onClose(pool.Close)

		sqlDB = stdlib.OpenDBFromPool(pool)
		app.onClose(func() { _ = sqlDB.Close() })

		if err = postgres.Migrate(ctx, sqlDB); err != nil {
			return nil, err
		}
	}

	var mongoDB *mongo.Database
	if cfg.Catalog.Source == "mongo" {
		var client *mongo.Client
		if client, err = OpenMongo(ctx, cfg.Mongo); err != nil {
			return nil, err
		}
		app.onClose(func() { _ = client.Disconnect(context.Background()) })
		mongoDB = client.Database(cfg.Mongo.Database)
	}

	previews, err := NewPreviewManager(ctx, cfg, rdb)
	if err != nil {
		return nil, err
	}

	chain, err := buildSinks(cfg, sqlDB, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("submission sinks configured", zap.Strings("sinks", chain.Names()))

	drafts := repository.NewDraftRepository(rdb, cfg.Wizard.DraftTTL)
	app.Wizard = service.NewWizardService(drafts, previews, chain, service.Options{
		Strict:            cfg.Wizard.Strict,
		MaxImagesPerIssue: cfg.Wizard.MaxImagesPerIssue,
		AttachRate:        cfg.Wizard.AttachRate,
		AttachBurst:       cfg.Wizard.AttachBurst,
	}, logger)

	app.Catalog = cache.New(NewCatalogProvider(cfg, sqlDB, mongoDB), rdb, cfg.Catalog.CacheTTL, logger)

	theme, err := shell.LoadTheme()
	if err != nil {
		return nil, err
	}

	identity, err := buildAuth(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := RouterDeps{
		ServiceName:    ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
		Redis:          httpapi.RedisPinger{Client: rdb},
		Auth:           identity,
		Shell:          shell.NewHandler(theme),
		Catalog:        cataloghttp.New(catalogservice.NewCatalogService(app.Catalog), logger),
		Inspection:     inspectionhttp.New(app.Wizard, drafts, previews, cfg.Wizard.MaxUploadBytes, logger),
	}
	if pool != nil {
		deps.DB = pool
	}
	app.Router = BuildRouter(deps)

	app.Scheduler = scheduler.NewScheduler(logger)
	if err = app.Scheduler.Add(scheduler.CacheWarmJob(cfg.Cron.CacheWarm, app.Catalog)); err != nil {
		return nil, err
	}
	if err = app.Scheduler.Add(scheduler.PreviewSweepJob(cfg.Cron.PreviewSweep, app.Wizard, logger)); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// NewPreviewManager builds the preview store selected by PREVIEW_BACKEND.
func NewPreviewManager(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*media.Manager, error) {
	var store media.Store
	switch cfg.Media.Backend {
	case "s3":
		s3Store, err := media.NewS3StoreFromEnv(ctx, cfg.Media.S3Region, cfg.Media.S3Endpoint, cfg.Media.S3Bucket)
		if err != nil {
			return nil, err
		}
		store = s3Store
	default:
		store = media.NewRedisStore(rdb)
	}
	tokens := media.NewTokenSigner(cfg.Media.PreviewSecret)
	return media.NewManager(store, tokens, rdb, cfg.Server.PublicURL), nil
}

func buildSinks(cfg *config.Config, db *sql.DB, logger *zap.Logger) (sink.Chain, error) {
	var chain sink.Chain
	for _, name := range cfg.Submission.Sinks {
		switch name {
		case config.SinkLog:
			chain = append(chain, sink.NewLogSink(logger))
		case config.SinkPostgres:
			if db == nil {
				return nil, fmt.Errorf("postgres sink needs a database connection")
			}
			chain = append(chain, sink.NewPostgresSink(repository.NewSubmissionRepository(db)))
		case config.SinkQueue:
			pub := sink.NewLmstfyPublisher(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
			chain = append(chain, sink.NewQueueSink(pub, cfg.Lmstfy.Queue))
		}
	}
	return chain, nil
}

// NewCatalogProvider layers the CATALOG_SOURCE stores over the static data.
func NewCatalogProvider(cfg *config.Config, db *sql.DB, mongoDB *mongo.Database) catalogdomain.Provider {
	base := static.New()
	switch cfg.Catalog.Source {
	case "postgres":
		return catalogservice.NewComposite(base, nil, catalogrepo.NewRegulatorRepository(db))
	case "mongo":
		var regulator catalogdomain.RegulatorSource
		if db != nil {
			regulator = catalogrepo.NewRegulatorRepository(db)
		}
		return catalogservice.NewComposite(base, catalogrepo.NewReportRepository(mongoDB, catalogrepo.ReportCollection), regulator)
	default:
		return base
	}
}

// buildAuth verifies Firebase ID tokens when credentials are configured and
// otherwise trusts the X-User-Id header.
func buildAuth(ctx context.Context, cfg *config.Config, logger *zap.Logger) (gin.HandlerFunc, error) {
	if cfg.Firebase.CredentialsPath == "" {
		if cfg.App.Environment == "production" {
			return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required in production")
		}
		logger.Warn("firebase disabled, using X-User-Id identities")
		return auth.OptionalUser(), nil
	}
	client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return authmw.FirebaseAuthMiddleware(client), nil
}
