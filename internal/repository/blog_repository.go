package repository

import (
	"errors"
	"strings"

	"github.com/aangan-site/aangan-api/internal/models"

	"gorm.io/gorm"
)

// BlogRepository is the blog data access interface.
type BlogRepository interface {
	List(filter BlogListFilter) ([]models.Blog, int64, error)
	ListAll() ([]models.Blog, error)
	GetByID(id string) (*models.Blog, error)
	GetBySlug(slug string) (*models.Blog, error)
	Create(blog *models.Blog) error
	Update(blog *models.Blog) error
	UpdateColumns(id uint, fields map[string]interface{}) error
	Delete(id string) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	MostLiked(limit int) ([]models.Blog, error)
	Count() (int64, error)
	SumLikes() (int64, error)
}

// GormBlogRepository is the GORM implementation.
type GormBlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a blog repository.
func NewBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

// List returns a page of posts with the total count.
func (r *GormBlogRepository) List(filter BlogListFilter) ([]models.Blog, int64, error) {
	var blogs []models.Blog
	query := r.db.Model(&models.Blog{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR slug LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "updated_at DESC, created_at DESC"
	}

	if err := query.Order(orderBy).Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListAll returns every post, most-recently-touched first.
func (r *GormBlogRepository) ListAll() ([]models.Blog, error) {
	blogs := make([]models.Blog, 0)
	err := r.db.
		Order("updated_at DESC, created_at DESC, id DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetByID fetches a post by id.
func (r *GormBlogRepository) GetByID(id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

// GetBySlug fetches a post by slug. Slugs carry a unique index, so this
// is a point lookup rather than a scan.
func (r *GormBlogRepository) GetBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.Where("slug = ?", slug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

// Create inserts a post.
func (r *GormBlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update saves a full post, advancing updated_at.
func (r *GormBlogRepository) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// UpdateColumns writes only the given columns without touching
// updated_at. Placement and engagement writes go through here so
// curatorial and like traffic never bumps a post in "latest updates".
func (r *GormBlogRepository) UpdateColumns(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumns(fields).Error
}

// Delete hard-removes a post.
func (r *GormBlogRepository) Delete(id string) error {
	return r.db.Delete(&models.Blog{}, "id = ?", id).Error
}

// CountBySlug counts posts carrying a slug, optionally excluding one id.
func (r *GormBlogRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MostLiked returns up to limit posts ordered by like count.
func (r *GormBlogRepository) MostLiked(limit int) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0)
	query := r.db.Order("likes DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// Count counts all posts.
func (r *GormBlogRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Blog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumLikes totals the like counters across all posts.
func (r *GormBlogRepository) SumLikes() (int64, error) {
	var total int64
	err := r.db.Model(&models.Blog{}).
		Select("COALESCE(SUM(likes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
