package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wordquiz_backend/internal/config"
	"wordquiz_backend/internal/controller"
	"wordquiz_backend/internal/repository"
	"wordquiz_backend/internal/service"
	"wordquiz_backend/pkg/logger"
	"wordquiz_backend/pkg/monitoring"
	"wordquiz_backend/pkg/security"
	"wordquiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
	repos    *repositories
}

type repositories struct {
	catalog *repository.CatalogRepository
	session *repository.SessionRepository
}

type services struct {
	storage *service.StorageService
	audio   *service.AudioService
	quiz    *service.QuizService
}

type controllers struct {
	quiz    *controller.QuizController
	catalog *controller.CatalogController
	audio   *controller.AudioController
	health  *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config) (*repositories, error) {
	catalog, err := repository.NewCatalogRepository(cfg.Catalog.Path, cfg.Catalog.Modules, cfg.Quiz.DefaultOptions)
	if err != nil {
		return nil, err
	}

	return &repositories{
		catalog: catalog,
		session: repository.NewSessionRepository(cfg.Quiz.SessionTTL()),
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage
	s.audio = service.NewAudioService(storage.Provider)
	s.quiz = service.NewQuizService(repos.catalog, repos.session, s.audio, cfg)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		quiz:    controller.NewQuizController(s.quiz, repos.catalog.DefaultSlug()),
		catalog: controller.NewCatalogController(repos.catalog),
		audio:   controller.NewAudioController(s.storage),
		health:  controller.NewHealthController(repos.catalog, repos.session),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ReloadConfig 配置热更新入口，目前只刷新测验默认参数
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.quiz.UpdateDefaults(cfg)
	logger.Log.Info("config reloaded", zap.Int("default_questions", cfg.Quiz.DefaultQuestions))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	repos, err := app.initRepositories(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to load question catalogs", zap.Error(err))
	}
	app.repos = repos

	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, repos)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("wordquiz", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// 本地模式下音频目录直接由 gin 提供静态服务
	if cfg.Storage.Type != "minio" {
		router.Static(cfg.Storage.BaseURL, cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.repos.session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
