package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	_ "servicios_locales/docs" // swag generated
	"servicios_locales/internal/adapter/http/handlers"
	"servicios_locales/internal/adapter/http/middleware"
	"servicios_locales/internal/adapter/persistence/repository"
	"servicios_locales/internal/adapter/persistence/sqlstore"
	"servicios_locales/internal/config"
	"servicios_locales/internal/infrastructure/cache"
	"servicios_locales/internal/infrastructure/database"
	"servicios_locales/internal/infrastructure/phone"
	"servicios_locales/internal/usecase"
	"servicios_locales/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 5 * time.Second

// Run builds the dependencies for cfg and serves the API until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Auth.Validate(); err != nil {
		return err
	}

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close()

	router := NewRouter(cfg, logger, deps.reservations)
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving api",
		slog.Int("port", cfg.Server.Port),
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("user_cache", cfg.Redis.Enabled()),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start the application: %w", err)
	}
	return nil
}

// NewRouter mounts middlewares and every route on a fresh engine.
func NewRouter(cfg *config.Config, logger *slog.Logger, uc usecase.IReservationUseCase) *gin.Engine {
	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setMiddlewares(router, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	reservationHandler := handlers.NewReservationHandler(uc, logger)
	addReservationRoutes(v1.Group("", middleware.Auth(cfg.Auth)), reservationHandler)
	return router
}

func setMiddlewares(router *gin.Engine, logger *slog.Logger) {
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.ErrorContext(c.Request.Context(), "recovered from panic",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

type dependencies struct {
	reservations usecase.IReservationUseCase
	closers      []func() error
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	var (
		reservationRepo interfaces.IReservationRepository
		serviceLookup   interfaces.IServiceListingLookup
		userDirectory   interfaces.IUserDirectory
	)
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		db, err := openSQLite(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, db.Close)
		reservationRepo = sqlstore.NewReservationRepository(db)
		serviceLookup = sqlstore.NewServiceListingRepository(db)
		userDirectory = sqlstore.NewUserRepository(db)
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		reservationRepo = repository.NewReservationDynamoRepository(ddb, cfg.DynamoDB)
		serviceLookup = repository.NewServiceListingDynamoRepository(ddb, cfg.DynamoDB)
		userDirectory = repository.NewUserDynamoRepository(ddb, cfg.DynamoDB)
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("user cache disabled", slog.String("addr", cfg.Redis.Addr), slog.Any("err", err))
		} else {
			deps.closers = append(deps.closers, rdb.Close)
			ttl := time.Duration(cfg.Redis.UserCacheTTLSeconds) * time.Second
			userDirectory = cache.NewUserDirectory(userDirectory, rdb, ttl, logger)
		}
	}
	userDirectory = phone.NewDirectory(userDirectory, phone.NewFormatter(cfg.Phone.DefaultRegion))

	deps.reservations = usecase.NewReservationUseCase(reservationRepo, serviceLookup, userDirectory, logger)
	return deps, nil
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	version, err := database.MigrateSQLite(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("sqlite ready", slog.String("path", path), slog.Int("schema_version", version))
	return db, nil
}
