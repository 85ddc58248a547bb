package router

import (
	"fmt"
	"strings"

	"github.com/aangan-site/aangan-api/internal/cache"
	"github.com/aangan-site/aangan-api/internal/config"
	adminhandlers "github.com/aangan-site/aangan-api/internal/http/handlers/admin"
	publichandlers "github.com/aangan-site/aangan-api/internal/http/handlers/public"
	"github.com/aangan-site/aangan-api/internal/logger"
	"github.com/aangan-site/aangan-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP engine and route table.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "aangan"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded images on the local storage backend.
	r.Static("/uploads", "./uploads")

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/blogs", publicHandler.GetBlogs)
			public.GET("/blogs/sections", publicHandler.GetBlogSections)
			public.GET("/blogs/most-liked", publicHandler.GetMostLikedBlogs)
			public.GET("/blogs/slug/:slug", publicHandler.GetBlogBySlug)
			public.POST("/blogs/:id/like", publicHandler.LikeBlog)
			public.POST("/blogs/:id/unlike", publicHandler.UnlikeBlog)

			public.POST("/testimonials", publicHandler.SubmitTestimonial)
			public.POST("/faqs", publicHandler.SubmitFaq)
			public.POST("/contacts", publicHandler.SubmitContact)
			public.POST("/waitlist", publicHandler.SubmitWaitlist)
		}

		apiV1.POST("/admin/login",
			RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")),
			adminHandler.Login)

		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
		{
			admin.GET("/me", adminHandler.Me)
			admin.POST("/logout", adminHandler.Logout)
			admin.PUT("/password", adminHandler.UpdatePassword)

			admin.GET("/blogs", adminHandler.GetBlogs)
			admin.GET("/blogs/:id", adminHandler.GetBlog)
			admin.POST("/blogs", adminHandler.CreateBlog)
			admin.PUT("/blogs/:id", adminHandler.UpdateBlog)
			admin.PUT("/blogs/:id/placement", adminHandler.UpdateBlogPlacement)
			admin.DELETE("/blogs/:id", adminHandler.DeleteBlog)

			admin.POST("/import/docx", adminHandler.ImportDocx)
			admin.POST("/uploads/image", adminHandler.UploadImage)

			admin.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
		}
	}

	return r
}
