package service

import (
	"context"
	"time"

	"github.com/aangan-site/aangan-api/internal/cache"
	"github.com/aangan-site/aangan-api/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService aggregates the admin overview numbers.
type DashboardService struct {
	blogRepo   repository.BlogRepository
	intakeRepo repository.IntakeRepository
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(blogRepo repository.BlogRepository, intakeRepo repository.IntakeRepository) *DashboardService {
	return &DashboardService{
		blogRepo:   blogRepo,
		intakeRepo: intakeRepo,
	}
}

// DashboardOverview is the admin overview payload.
type DashboardOverview struct {
	Blogs        int64 `json:"blogs"`
	TotalLikes   int64 `json:"total_likes"`
	Testimonials int64 `json:"testimonials"`
	Faqs         int64 `json:"faqs"`
	Contacts     int64 `json:"contacts"`
	Waitlist     int64 `json:"waitlist"`
}

// Overview collects content and intake counts, cached briefly so the
// admin home does not hammer the database on refresh.
func (s *DashboardService) Overview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	cacheKey := "dashboard:overview"
	if !forceRefresh {
		var cached DashboardOverview
		if ok, _ := cache.GetJSON(ctx, cacheKey, &cached); ok {
			return &cached, nil
		}
	}

	var overview DashboardOverview
	var err error

	if overview.Blogs, err = s.blogRepo.Count(); err != nil {
		return nil, err
	}
	if overview.TotalLikes, err = s.blogRepo.SumLikes(); err != nil {
		return nil, err
	}
	if overview.Testimonials, err = s.intakeRepo.CountTestimonials(); err != nil {
		return nil, err
	}
	if overview.Faqs, err = s.intakeRepo.CountFaqs(); err != nil {
		return nil, err
	}
	if overview.Contacts, err = s.intakeRepo.CountContactMessages(); err != nil {
		return nil, err
	}
	if overview.Waitlist, err = s.intakeRepo.CountWaitlistEntries(); err != nil {
		return nil, err
	}

	_ = cache.SetJSON(ctx, cacheKey, overview, dashboardCacheTTL)
	return &overview, nil
}
