package provider

import (
	"github.com/aangan-site/aangan-api/internal/cache"
	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/logger"
	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/queue"
	"github.com/aangan-site/aangan-api/internal/repository"
	"github.com/aangan-site/aangan-api/internal/service"
)

// Container wires repositories and services once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo   repository.AdminRepository
	BlogRepo    repository.BlogRepository
	IntakeRepo  repository.IntakeRepository
	SettingRepo repository.SettingRepository

	// Services
	AuthService      *service.AuthService
	BlogService      *service.BlogService
	IntakeService    *service.IntakeService
	EmailService     *service.EmailService
	UploadService    *service.UploadService
	ImportService    *service.ImportService
	DashboardService *service.DashboardService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.BlogRepo = repository.NewBlogRepository(db)
	c.IntakeRepo = repository.NewIntakeRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.BlogService = service.NewBlogService(c.BlogRepo, c.SettingRepo)
	c.IntakeService = service.NewIntakeService(c.IntakeRepo, c.QueueClient)
	c.EmailService = service.NewEmailService(&c.Config.Email)

	uploadService, err := service.NewUploadService(c.Config)
	if err != nil {
		logger.Errorw("provider_init_upload_service_failed", "error", err)
		uploadService, _ = service.NewUploadService(&config.Config{Upload: c.Config.Upload})
	}
	c.UploadService = uploadService
	c.ImportService = service.NewImportService(c.UploadService)
	c.DashboardService = service.NewDashboardService(c.BlogRepo, c.IntakeRepo)
}

// Close releases held resources.
func (c *Container) Close() {
	if c.QueueClient != nil {
		_ = c.QueueClient.Close()
	}
}
