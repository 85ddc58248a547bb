package main

import (
	"os"
	"time"

	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/constants"
	"github.com/aangan-site/aangan-api/internal/logger"
	"github.com/aangan-site/aangan-api/internal/models"
)

// Seeds the admin account and a few sample posts for local
// development.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin(os.Getenv("AANGAN_ADMIN_EMAIL"), os.Getenv("AANGAN_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("failed to seed admin: %v", err)
	}

	now := time.Now()
	blogs := []models.Blog{
		{
			Slug:         "welcome-to-aangan",
			Title:        "Welcome to Aangan",
			HTML:         "<p>Aangan is a shared courtyard for stories, recipes and community news. This first post shows how published articles look on the site.</p>",
			Excerpt:      "Aangan is a shared courtyard for stories, recipes and community news. This first post shows how published articles look on the site.",
			MinutesRead:  3,
			Categories:   models.StringArray{"community"},
			ThumbnailURL: "/uploads/common/welcome.jpg",
			Placement:    constants.PlacementTop,
			IsFeatured:   true,
			LikedBy:      models.StringArray{},
			PublishedAt:  now.AddDate(0, 0, -7),
		},
		{
			Slug:         "courtyard-kitchen-notes",
			Title:        "Courtyard Kitchen Notes",
			HTML:         "<p>Seasonal cooking from the aangan kitchen, starting with monsoon favourites.</p>",
			Excerpt:      "Seasonal cooking from the aangan kitchen, starting with monsoon favourites.",
			MinutesRead:  5,
			Categories:   models.StringArray{"recipes"},
			ThumbnailURL: "/uploads/common/kitchen.jpg",
			Placement:    constants.PlacementMonthly,
			LikedBy:      models.StringArray{},
			PublishedAt:  now.AddDate(0, 0, -3),
		},
		{
			Slug:         "festival-season-guide",
			Title:        "Festival Season Guide",
			HTML:         "<p>Everything happening around the courtyard this festival season.</p>",
			Excerpt:      "Everything happening around the courtyard this festival season.",
			MinutesRead:  4,
			Categories:   models.StringArray{"events", "community"},
			ThumbnailURL: "/uploads/common/festival.jpg",
			Placement:    constants.PlacementLatest,
			LikedBy:      models.StringArray{},
			PublishedAt:  now.AddDate(0, 0, -1),
		},
	}

	for _, blog := range blogs {
		var existing models.Blog
		if err := models.DB.Where("slug = ?", blog.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&blog).Error; err != nil {
				stdLog.Printf("failed to create blog %s: %v", blog.Slug, err)
			} else {
				stdLog.Printf("created blog: %s", blog.Slug)
			}
		} else {
			stdLog.Printf("blog already exists: %s", blog.Slug)
		}
	}

	stdLog.Printf("seed complete")
}
