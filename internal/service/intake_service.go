package service

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/aangan-site/aangan-api/internal/constants"
	"github.com/aangan-site/aangan-api/internal/logger"
	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/queue"
	"github.com/aangan-site/aangan-api/internal/repository"
)

// IntakeService handles inbound form submissions. Each submit persists
// the record first, then enqueues the owner notification; a dead queue
// never fails the visitor's request.
type IntakeService struct {
	repo        repository.IntakeRepository
	queueClient *queue.Client
}

// NewIntakeService creates an intake service.
func NewIntakeService(repo repository.IntakeRepository, queueClient *queue.Client) *IntakeService {
	return &IntakeService{
		repo:        repo,
		queueClient: queueClient,
	}
}

// TestimonialInput is a testimonial form submission.
type TestimonialInput struct {
	Name   string
	City   string
	Rating int
	Text   string
}

// FaqInput is a question form submission.
type FaqInput struct {
	Question string
	Email    string
}

// ContactInput is a contact form submission.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// SubmitTestimonial validates and stores a testimonial.
func (s *IntakeService) SubmitTestimonial(input TestimonialInput) (*models.Testimonial, error) {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	text := strings.TrimSpace(input.Text)
	if name == "" {
		return nil, ErrNameRequired
	}
	if city == "" || text == "" {
		return nil, ErrMessageRequired
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	record := models.Testimonial{
		Name:   name,
		City:   city,
		Rating: input.Rating,
		Text:   text,
	}
	if err := s.repo.CreateTestimonial(&record); err != nil {
		return nil, err
	}

	s.notify(constants.IntakeKindTestimonial, map[string]string{
		"Name":   name,
		"City":   city,
		"Rating": fmt.Sprintf("%d", input.Rating),
		"Text":   text,
	})
	return &record, nil
}

// SubmitFaq validates and stores a visitor question.
func (s *IntakeService) SubmitFaq(input FaqInput) (*models.Faq, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrMessageRequired
	}
	email := strings.TrimSpace(input.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	record := models.Faq{
		Question: question,
		Email:    email,
	}
	if err := s.repo.CreateFaq(&record); err != nil {
		return nil, err
	}

	s.notify(constants.IntakeKindFaq, map[string]string{
		"Question": question,
		"Email":    email,
	})
	return &record, nil
}

// SubmitContact validates and stores a contact message.
func (s *IntakeService) SubmitContact(input ContactInput) (*models.ContactMessage, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)

	if firstName == "" {
		return nil, ErrNameRequired
	}
	if message == "" {
		return nil, ErrMessageRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	fullName := firstName
	if lastName != "" {
		fullName = firstName + " " + lastName
	}

	record := models.ContactMessage{
		FirstName: firstName,
		LastName:  lastName,
		FullName:  fullName,
		Email:     email,
		Message:   message,
	}
	if err := s.repo.CreateContactMessage(&record); err != nil {
		return nil, err
	}

	s.notify(constants.IntakeKindContact, map[string]string{
		"Name":    fullName,
		"Email":   email,
		"Message": message,
	})
	return &record, nil
}

// SubmitWaitlist validates and stores a waitlist signup.
func (s *IntakeService) SubmitWaitlist(email string) (*models.WaitlistEntry, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	record := models.WaitlistEntry{Email: email}
	if err := s.repo.CreateWaitlistEntry(&record); err != nil {
		return nil, err
	}

	s.notify(constants.IntakeKindWaitlist, map[string]string{
		"Email": email,
	})
	return &record, nil
}

func (s *IntakeService) notify(kind string, fields map[string]string) {
	err := s.queueClient.EnqueueIntakeEmail(queue.IntakeEmailPayload{
		Kind:   kind,
		Fields: fields,
	})
	if err != nil {
		logger.Warnw("intake_email_enqueue_failed",
			"kind", kind,
			"error", err,
		)
	}
}
