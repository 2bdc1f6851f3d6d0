package app

import (
	"context"
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/controller"
	"course_quest_backend/internal/repository"
	"course_quest_backend/internal/service"
	"course_quest_backend/pkg/configwatcher"
	"course_quest_backend/pkg/database"
	"course_quest_backend/pkg/logger"
	"course_quest_backend/pkg/monitoring"
	"course_quest_backend/pkg/security"
	"course_quest_backend/pkg/tracing"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	ConfigFile      string
	services        *services
	configCallbacks []func(*config.Config)
	shutdownTracer  func(context.Context) error
	ctx             context.Context
	cancel          context.CancelFunc
}

type repositories struct {
	user         *repository.UserRepository
	notification *repository.NotificationRepository
	course       *repository.CourseRepository
	enrollment   *repository.EnrollmentRepository
	quizResult   *repository.QuizResultRepository
	achievement  *repository.AchievementRepository
}

type services struct {
	storage     *service.StorageService
	auth        *service.AuthService
	user        *service.UserService
	progress    *service.ProgressService
	achievement *service.AchievementService
	course      *service.CourseService
	quiz        *service.QuizService
}

type controllers struct {
	health      *controller.HealthController
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	quiz        *controller.QuizController
	achievement *controller.AchievementController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		notification: repository.NewNotificationRepository(db),
		course:       repository.NewCourseRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		quizResult:   repository.NewQuizResultRepository(db),
		achievement:  repository.NewAchievementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.storage, cfg)
	s.user = service.NewUserService(repos.user, repos.notification, repos.enrollment, s.storage)
	s.progress = service.NewProgressService(repos.user, repos.notification, db, cfg.Progress.MaxAwardAttempts)
	s.achievement = service.NewAchievementService(
		repos.achievement,
		repos.user,
		repos.quizResult,
		repos.enrollment,
		repos.course,
	)
	s.course = service.NewCourseService(repos.course, repos.enrollment, repos.user, s.storage)
	s.quiz = service.NewQuizService(repos.course, repos.user, repos.quizResult, s.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:      controller.NewHealthController(db),
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.achievement),
		course:      controller.NewCourseController(s.course),
		quiz:        controller.NewQuizController(s.quiz),
		achievement: controller.NewAchievementController(s.achievement),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 使用已打开的数据库组装路由，测试中直接调用
func New(cfg *config.Config, db *gorm.DB) *App {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		ctx:    ctx,
		cancel: cancel,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, db)
	controllers := app.initControllers(app.services, db)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.SetLevel)

	return app
}

// NewApp 初始化日志、数据库和链路追踪
func NewApp(cfg *config.Config, configFile string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}, nil
	}

	app := New(cfg, db)
	app.ConfigFile = configFile

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.shutdownTracer = shutdown
		}
	}

	return app, nil
}

func (a *App) watchConfig() {
	if a.ConfigFile == "" {
		return
	}
	go func() {
		err := configwatcher.Watch(a.ctx, a.ConfigFile, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.String("file", filepath.Base(a.ConfigFile)), zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.watchConfig()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}

// Close 停止后台协程
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}
