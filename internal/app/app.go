package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/controller"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/configwatcher"
	"skillpath_backend/pkg/database"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/security"
	"skillpath_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Store  repository.StateStore

	ai              *service.AIService
	cron            *cron.Cron
	tracer          *sdktrace.TracerProvider
	stopWatcher     context.CancelFunc
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type services struct {
	state      *service.StateService
	generation *service.GenerationService
	auth       *service.AuthService
	goal       *service.GoalService
	dashboard  *service.DashboardService
	assessment *service.AssessmentService
	course     *service.CourseService
	community  *service.CommunityService
}

type controllers struct {
	auth       *controller.AuthController
	goal       *controller.GoalController
	dashboard  *controller.DashboardController
	assessment *controller.AssessmentController
	course     *controller.CourseController
	community  *controller.CommunityController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

// initPersistence 按 persistence.driver 选择状态存储
func (a *App) initPersistence() (repository.StateStore, error) {
	cfg := a.Config
	switch cfg.Persistence.Driver {
	case util.PersistenceRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		a.Redis = rdb
		return repository.NewRedisStateRepository(rdb), nil
	case util.PersistenceMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.DB = db
		repo := repository.NewStateRepository(db)
		// release 模式由 migrate 子命令建表
		if cfg.Server.Mode != gin.ReleaseMode {
			if err := repo.Migrate(); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return repo, nil
	default:
		return repository.NewMemoryStateRepository(), nil
	}
}

func (a *App) healthPing() func(ctx context.Context) error {
	switch {
	case a.Redis != nil:
		return func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	case a.DB != nil:
		return func(ctx context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	default:
		return nil
	}
}

func (a *App) initServices(store repository.StateStore, gen service.StructuredGenerator) *services {
	cfg := a.Config
	s := &services{}

	s.state = service.NewStateService(store)
	s.generation = service.NewGenerationService(gen)
	s.auth = service.NewAuthService(s.state, s.generation, cfg)
	s.goal = service.NewGoalService(s.state, s.generation)
	s.dashboard = service.NewDashboardService(s.state)
	s.assessment = service.NewAssessmentService(s.state, s.generation)
	s.community = service.NewCommunityService()

	var links service.LinkChecker
	if cfg.Course.VerifyLinks {
		links = service.NewHTTPLinkChecker(time.Duration(cfg.Course.LinkTimeoutSeconds) * time.Second)
	}
	s.course = service.NewCourseService(s.state, s.generation, links, cfg.Course)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		goal:       controller.NewGoalController(s.goal),
		dashboard:  controller.NewDashboardController(s.dashboard),
		assessment: controller.NewAssessmentController(s.assessment),
		course:     controller.NewCourseController(s.course),
		community:  controller.NewCommunityController(s.community),
		admin:      controller.NewAdminController(s.state),
		health:     controller.NewHealthController(a.Config.Persistence.Driver, a.healthPing()),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// build 组装服务和路由，测试里用内存存储和假的生成服务调用
func (a *App) build(store repository.StateStore, gen service.StructuredGenerator) *services {
	a.Store = store

	s := a.initServices(store, gen)
	c := a.initControllers(s)

	router := gin.Default()
	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, c, s)
	a.Router = router

	return s
}

// startBackgroundTasks 定时清理过期状态，并监听配置文件变更
func (a *App) startBackgroundTasks() error {
	if purger, ok := a.Store.(repository.Purger); ok {
		a.cron = cron.New()
		_, err := a.cron.AddFunc(a.Config.Persistence.PurgeSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			purged, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Log.Error("State purge failed", zap.Error(err))
				return
			}
			monitoring.StatePurged.Add(float64(purged))
			if purged > 0 {
				logger.Log.Info("Expired state purged", zap.Int64("count", purged))
			}
		})
		if err != nil {
			return fmt.Errorf("schedule purge job %q: %w", a.Config.Persistence.PurgeSpec, err)
		}
		a.cron.Start()
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := configwatcher.WatchConfig(ctx, a.Config.Path, a.applyConfig); err != nil {
		cancel()
		logger.Log.Warn("Config hot reload disabled", zap.String("dir", a.Config.Path), zap.Error(err))
		return nil
	}
	a.stopWatcher = cancel
	return nil
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	app := &App{Config: cfg}

	store, err := app.initPersistence()
	if err != nil {
		return nil, err
	}
	logger.Log.Info("State store ready", zap.String("driver", cfg.Persistence.Driver))

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	app.ai = service.NewAIService(cfg.AI)
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI config updated", zap.String("model", newCfg.AI.Model))
	})

	app.build(store, app.ai)

	if err := app.startBackgroundTasks(); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		a.shutdown()
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.shutdown()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

func (a *App) shutdown() {
	if a.stopWatcher != nil {
		a.stopWatcher()
	}
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}
