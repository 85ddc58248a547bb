package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/queue"
	"github.com/aangan-site/aangan-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newIntakeService(t *testing.T) (*IntakeService, repository.IntakeRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:intakesvc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Testimonial{},
		&models.Faq{},
		&models.ContactMessage{},
		&models.WaitlistEntry{},
	)
	if err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}

	repo := repository.NewIntakeRepository(db)
	return NewIntakeService(repo, queueClient), repo
}

func TestSubmitTestimonial(t *testing.T) {
	svc, repo := newIntakeService(t)

	if _, err := svc.SubmitTestimonial(TestimonialInput{City: "Pune", Rating: 5, Text: "x"}); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.SubmitTestimonial(TestimonialInput{Name: "Asha", Rating: 5, Text: "x"}); err != ErrMessageRequired {
		t.Fatalf("expected ErrMessageRequired for missing city, got %v", err)
	}
	if _, err := svc.SubmitTestimonial(TestimonialInput{Name: "Asha", City: "Pune", Rating: 6, Text: "x"}); err != ErrInvalidRating {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := svc.SubmitTestimonial(TestimonialInput{Name: "Asha", City: "Pune", Rating: 0, Text: "x"}); err != ErrInvalidRating {
		t.Fatalf("expected ErrInvalidRating for zero, got %v", err)
	}

	record, err := svc.SubmitTestimonial(TestimonialInput{
		Name:   "  Asha  ",
		City:   "Pune",
		Rating: 5,
		Text:   "Loved the courtyard.",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.ID == 0 || record.Name != "Asha" {
		t.Fatalf("unexpected record: %+v", record)
	}

	count, err := repo.CountTestimonials()
	if err != nil || count != 1 {
		t.Fatalf("expected one stored testimonial, got %d (%v)", count, err)
	}
}

func TestSubmitFaq(t *testing.T) {
	svc, repo := newIntakeService(t)

	if _, err := svc.SubmitFaq(FaqInput{Email: "a@b.in"}); err != ErrMessageRequired {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
	if _, err := svc.SubmitFaq(FaqInput{Question: "When?", Email: "not-an-email"}); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	// Email is optional.
	record, err := svc.SubmitFaq(FaqInput{Question: "Do you deliver?"})
	if err != nil {
		t.Fatalf("submit without email failed: %v", err)
	}
	if record.Question != "Do you deliver?" {
		t.Fatalf("unexpected record: %+v", record)
	}

	if _, err := svc.SubmitFaq(FaqInput{Question: "Timings?", Email: "guest@example.com"}); err != nil {
		t.Fatalf("submit with email failed: %v", err)
	}

	count, err := repo.CountFaqs()
	if err != nil || count != 2 {
		t.Fatalf("expected two stored questions, got %d (%v)", count, err)
	}
}

func TestSubmitContact(t *testing.T) {
	svc, repo := newIntakeService(t)

	if _, err := svc.SubmitContact(ContactInput{Email: "a@b.in", Message: "hi"}); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.SubmitContact(ContactInput{FirstName: "Ravi", Email: "a@b.in"}); err != ErrMessageRequired {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
	if _, err := svc.SubmitContact(ContactInput{FirstName: "Ravi", Email: "bad", Message: "hi"}); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	record, err := svc.SubmitContact(ContactInput{
		FirstName: "Ravi",
		LastName:  "Kumar",
		Email:     "ravi@example.com",
		Message:   "Catering inquiry.",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.FullName != "Ravi Kumar" {
		t.Fatalf("expected derived full name, got %q", record.FullName)
	}

	// Last name is optional.
	record, err = svc.SubmitContact(ContactInput{
		FirstName: "Meera",
		Email:     "meera@example.com",
		Message:   "Hello.",
	})
	if err != nil {
		t.Fatalf("submit without last name failed: %v", err)
	}
	if record.FullName != "Meera" {
		t.Fatalf("expected first name as full name, got %q", record.FullName)
	}

	count, err := repo.CountContactMessages()
	if err != nil || count != 2 {
		t.Fatalf("expected two stored messages, got %d (%v)", count, err)
	}
}

func TestSubmitWaitlist(t *testing.T) {
	svc, repo := newIntakeService(t)

	if _, err := svc.SubmitWaitlist(""); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail for empty, got %v", err)
	}
	if _, err := svc.SubmitWaitlist("not valid"); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	record, err := svc.SubmitWaitlist("  early@example.com  ")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.Email != "early@example.com" {
		t.Fatalf("expected trimmed email, got %q", record.Email)
	}

	count, err := repo.CountWaitlistEntries()
	if err != nil || count != 1 {
		t.Fatalf("expected one stored signup, got %d (%v)", count, err)
	}
}
