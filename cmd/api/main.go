package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardnews/cardnews-backend/internal/autosave"
	"github.com/cardnews/cardnews-backend/internal/config"
	"github.com/cardnews/cardnews-backend/internal/database"
	"github.com/cardnews/cardnews-backend/internal/handler"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/migration"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/internal/routes"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/cardnews/cardnews-backend/internal/ws"
	pkgcache "github.com/cardnews/cardnews-backend/pkg/cache"
	"github.com/cardnews/cardnews-backend/pkg/i18n"
	"github.com/cardnews/cardnews-backend/pkg/jwt"
	pkglogger "github.com/cardnews/cardnews-backend/pkg/logger"
	pkgredis "github.com/cardnews/cardnews-backend/pkg/redis"
	pkgstorage "github.com/cardnews/cardnews-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"
)

// @title           CardNews Backend API
// @version         1.0
// @description     카드뉴스 작성/공유 서비스 API
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run() error {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := config.Path(env)
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.LogResolved(cfg)

	if _, err := os.Stat("i18n"); err == nil {
		if err := i18n.Default().LoadDir("i18n"); err != nil {
			pkglogger.Warn("i18n LoadDir failed: %v", err)
		}
	}

	// DB 연결 (필수)
	db, err := database.Open(cfg, gormLogLevel(cfg))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)
	if err := migration.Run(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Redis 연결 (선택: 없으면 자동 저장/캐시/멀티 인스턴스 알림이 비활성)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
		defer func() { _ = redisClient.Close() }()
	}
	cacheService := pkgcache.NewService(redisClient)

	// S3-compatible storage (export archives)
	var objectStore pkgstorage.ObjectStore
	if cfg.Storage.Enabled {
		s3Client, err := pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.Warn("S3 storage init failed: %v (archive export disabled)", err)
		} else {
			objectStore = s3Client
			pkglogger.Info("S3 storage ready (bucket=%s)", cfg.Storage.Bucket)
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Autosave debouncer
	draftStore := autosave.NewCacheStore(cacheService)
	debouncer := autosave.NewDebouncer(draftStore,
		autosave.WithWindow(cfg.AutosaveWindow()),
		autosave.WithTTL(cfg.AutosaveTTL()),
	)
	drafts := autosave.NewService(debouncer, draftStore)

	// WebSocket Hub
	hub := ws.NewHub(redisClient)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	workRepo := repository.NewWorkRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	workService := service.NewWorkService(workRepo, drafts)
	versionService := service.NewVersionService(versionRepo, workRepo, drafts)
	exportService := service.NewExportService(workRepo, objectStore)
	templateService := service.NewTemplateService(templateRepo, workRepo, cacheService, drafts)
	commentService := service.NewCommentService(commentRepo, workRepo, hub)
	likeService := service.NewLikeService(likeRepo, workRepo, hub)
	autosaveService := service.NewAutosaveService(drafts, workRepo, templateRepo)

	router := newRouter(cfg, redisClient)
	routes.Setup(router, routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Work:     handler.NewWorkHandler(workService, exportService),
		Version:  handler.NewVersionHandler(versionService),
		Template: handler.NewTemplateHandler(templateService),
		Comment:  handler.NewCommentHandler(commentService),
		Like:     handler.NewLikeHandler(likeService),
		Autosave: handler.NewAutosaveHandler(autosaveService),
		WS:       handler.NewWSHandler(hub, cfg.AllowOrigins()),
	}, jwtManager)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return debouncer.Run(gctx) })
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		pkglogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	pkglogger.Info("Server exited")
	return err
}

// newRouter builds the engine with the global middleware and operational endpoints
func newRouter(cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 설정 (origin 미설정 시 전체 허용, 인증정보 전송 불가)
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowOrigins(),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "Content-Language"},
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.I18n())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(redisClient, middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		}))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "cardnews-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.IsDevelopment() {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
