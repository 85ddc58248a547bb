package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newDashboardService(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:dashsvc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Blog{},
		&models.Testimonial{},
		&models.Faq{},
		&models.ContactMessage{},
		&models.WaitlistEntry{},
	)
	if err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewDashboardService(repository.NewBlogRepository(db), repository.NewIntakeRepository(db)), db
}

func TestDashboardOverviewCounts(t *testing.T) {
	svc, db := newDashboardService(t)

	rows := []interface{}{
		&models.Blog{Title: "a", Slug: "a", HTML: "<p>x</p>", ThumbnailURL: "/t.jpg", Likes: 3, PublishedAt: time.Now()},
		&models.Blog{Title: "b", Slug: "b", HTML: "<p>x</p>", ThumbnailURL: "/t.jpg", Likes: 2, PublishedAt: time.Now()},
		&models.Testimonial{Name: "Asha", City: "Pune", Rating: 5, Text: "x"},
		&models.Faq{Question: "When?"},
		&models.ContactMessage{FirstName: "Ravi", FullName: "Ravi", Email: "r@example.com", Message: "hi"},
		&models.WaitlistEntry{Email: "early@example.com"},
		&models.WaitlistEntry{Email: "later@example.com"},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	overview, err := svc.Overview(context.Background(), true)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.Blogs != 2 || overview.TotalLikes != 5 {
		t.Fatalf("unexpected blog counts: %+v", overview)
	}
	if overview.Testimonials != 1 || overview.Faqs != 1 || overview.Contacts != 1 || overview.Waitlist != 2 {
		t.Fatalf("unexpected intake counts: %+v", overview)
	}
}

func TestDashboardOverviewEmpty(t *testing.T) {
	svc, _ := newDashboardService(t)

	overview, err := svc.Overview(context.Background(), true)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.Blogs != 0 || overview.TotalLikes != 0 || overview.Waitlist != 0 {
		t.Fatalf("expected zeroed overview, got %+v", overview)
	}
}
