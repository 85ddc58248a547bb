package public

import (
	"errors"

	"github.com/aangan-site/aangan-api/internal/http/response"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
)

// TestimonialRequest is the testimonial form payload.
type TestimonialRequest struct {
	Name   string `json:"name"`
	City   string `json:"city"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// SubmitTestimonial accepts a testimonial submission.
func (h *Handler) SubmitTestimonial(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	record, err := h.IntakeService.SubmitTestimonial(service.TestimonialInput{
		Name:   req.Name,
		City:   req.City,
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		respondIntakeError(c, err)
		return
	}
	response.SuccessWithMsg(c, "testimonial received", record)
}

// FaqRequest is the question form payload.
type FaqRequest struct {
	Question string `json:"question"`
	Email    string `json:"email"`
}

// SubmitFaq accepts a visitor question.
func (h *Handler) SubmitFaq(c *gin.Context) {
	var req FaqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	record, err := h.IntakeService.SubmitFaq(service.FaqInput{
		Question: req.Question,
		Email:    req.Email,
	})
	if err != nil {
		respondIntakeError(c, err)
		return
	}
	response.SuccessWithMsg(c, "question received", record)
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// SubmitContact accepts a contact message.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	record, err := h.IntakeService.SubmitContact(service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
	})
	if err != nil {
		respondIntakeError(c, err)
		return
	}
	response.SuccessWithMsg(c, "message received", record)
}

// WaitlistRequest is the waitlist signup payload.
type WaitlistRequest struct {
	Email string `json:"email"`
}

// SubmitWaitlist accepts a waitlist signup.
func (h *Handler) SubmitWaitlist(c *gin.Context) {
	var req WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	record, err := h.IntakeService.SubmitWaitlist(req.Email)
	if err != nil {
		respondIntakeError(c, err)
		return
	}
	response.SuccessWithMsg(c, "added to waitlist", record)
}

func respondIntakeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		respondError(c, response.CodeBadRequest, "name is required", nil)
	case errors.Is(err, service.ErrMessageRequired):
		respondError(c, response.CodeBadRequest, "required fields are missing", nil)
	case errors.Is(err, service.ErrInvalidRating):
		respondError(c, response.CodeBadRequest, "rating must be between 1 and 5", nil)
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, "a valid email address is required", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save submission", err)
	}
}
