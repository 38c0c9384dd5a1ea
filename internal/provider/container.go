package provider

import (
	"time"

	"github.com/petits-moulins/api/internal/cache"
	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/logger"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/queue"
	"github.com/petits-moulins/api/internal/repository"
	"github.com/petits-moulins/api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ParentRepo           repository.ParentRepository
	EducatorRepo         repository.EducatorRepository
	GroupRepo            repository.GroupRepository
	ConsentFormRepo      repository.ConsentFormRepository
	VerificationCodeRepo repository.VerificationCodeRepository

	// Services
	AuthService        *service.AuthService
	EmailService       *service.EmailService
	CaptchaService     *service.CaptchaService
	ParentService      *service.ParentService
	EducatorService    *service.EducatorService
	GroupService       *service.GroupService
	ConsentFormService *service.ConsentFormService
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
	c.ParentRepo = repository.NewParentRepository(db)
	c.EducatorRepo = repository.NewEducatorRepository(db)
	c.GroupRepo = repository.NewGroupRepository(db)
	c.ConsentFormRepo = repository.NewConsentFormRepository(db)
	c.VerificationCodeRepo = repository.NewVerificationCodeRepository(db)
}

func (c *Container) initServices() {
	listTTL := time.Duration(c.Config.Cache.ListTTLSeconds) * time.Second
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.ParentRepo, c.VerificationCodeRepo, c.EmailService)
	c.ParentService = service.NewParentService(c.ParentRepo)
	c.EducatorService = service.NewEducatorService(c.EducatorRepo, listTTL)
	c.GroupService = service.NewGroupService(c.GroupRepo, listTTL)
	c.ConsentFormService = service.NewConsentFormService(c.ConsentFormRepo, c.QueueClient)
}
