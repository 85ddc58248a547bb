package repository

import (
	"github.com/aangan-site/aangan-api/internal/models"

	"gorm.io/gorm"
)

// IntakeRepository persists inbound form submissions.
type IntakeRepository interface {
	CreateTestimonial(t *models.Testimonial) error
	CreateFaq(f *models.Faq) error
	CreateContactMessage(m *models.ContactMessage) error
	CreateWaitlistEntry(w *models.WaitlistEntry) error
	CountTestimonials() (int64, error)
	CountFaqs() (int64, error)
	CountContactMessages() (int64, error)
	CountWaitlistEntries() (int64, error)
}

// GormIntakeRepository is the GORM implementation.
type GormIntakeRepository struct {
	db *gorm.DB
}

// NewIntakeRepository creates an intake repository.
func NewIntakeRepository(db *gorm.DB) *GormIntakeRepository {
	return &GormIntakeRepository{db: db}
}

func (r *GormIntakeRepository) CreateTestimonial(t *models.Testimonial) error {
	return r.db.Create(t).Error
}

func (r *GormIntakeRepository) CreateFaq(f *models.Faq) error {
	return r.db.Create(f).Error
}

func (r *GormIntakeRepository) CreateContactMessage(m *models.ContactMessage) error {
	return r.db.Create(m).Error
}

func (r *GormIntakeRepository) CreateWaitlistEntry(w *models.WaitlistEntry) error {
	return r.db.Create(w).Error
}

func (r *GormIntakeRepository) CountTestimonials() (int64, error) {
	return r.count(&models.Testimonial{})
}

func (r *GormIntakeRepository) CountFaqs() (int64, error) {
	return r.count(&models.Faq{})
}

func (r *GormIntakeRepository) CountContactMessages() (int64, error) {
	return r.count(&models.ContactMessage{})
}

func (r *GormIntakeRepository) CountWaitlistEntries() (int64, error) {
	return r.count(&models.WaitlistEntry{})
}

func (r *GormIntakeRepository) count(model interface{}) (int64, error) {
	var count int64
	if err := r.db.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
