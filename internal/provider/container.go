package provider

import (
	"github.com/vietour/internal/authz"
	"github.com/vietour/internal/cache"
	"github.com/vietour/internal/config"
	"github.com/vietour/internal/logger"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/queue"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	TourRepo          repository.TourRepository
	CategoryRepo      repository.CategoryRepository
	PlaceRepo         repository.PlaceRepository
	CartRepo          repository.CartRepository
	BookingRepo       repository.BookingRepository
	UserLoginLogRepo  repository.UserLoginLogRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	TourService         *service.TourService
	CategoryService     *service.CategoryService
	PlaceService        *service.PlaceService
	CartService         *service.CartService
	BookingService      *service.BookingService
	UserLoginLogService *service.UserLoginLogService
	AuthzAuditService   *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.TourRepo = repository.NewTourRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.PlaceRepo = repository.NewPlaceRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.AdminRepo)
	c.TourService = service.NewTourService(c.Config, c.TourRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.PlaceService = service.NewPlaceService(c.Config, c.PlaceRepo)
	c.CartService = service.NewCartService(c.Config, c.CartRepo, c.TourRepo)
	c.BookingService = service.NewBookingService(c.Config, c.BookingRepo, c.CartRepo, c.TourRepo, c.QueueClient)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
