package service

import (
	"strings"
	"testing"

	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/constants"
)

func TestSendIntakeNotificationGuards(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{})
	if err := svc.SendIntakeNotification(constants.IntakeKindFaq, nil); err != ErrEmailServiceNotConfigured {
		t.Fatalf("expected ErrEmailServiceNotConfigured without recipient, got %v", err)
	}

	svc = NewEmailService(&config.EmailConfig{To: "owner@aangan.in"})
	if err := svc.SendIntakeNotification(constants.IntakeKindFaq, nil); err != ErrEmailServiceDisabled {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestBuildIntakeContent(t *testing.T) {
	subject, body := buildIntakeContent(constants.IntakeKindContact, map[string]string{
		"Name":    "Ravi Kumar",
		"Email":   "ravi@example.com",
		"Message": "Catering inquiry.",
	})
	if subject != "New contact message" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	// Fields render in a stable sorted order.
	emailIdx := strings.Index(body, "Email:")
	nameIdx := strings.Index(body, "Name:")
	if emailIdx == -1 || nameIdx == -1 || emailIdx > nameIdx {
		t.Fatalf("fields missing or unsorted:\n%s", body)
	}

	subject, _ = buildIntakeContent("mystery", nil)
	if subject != "New form submission" {
		t.Fatalf("unexpected fallback subject: %q", subject)
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := buildEmailMessage("Aangan <no-reply@aangan.in>", "owner@aangan.in", "Hello", "Body line.")
	for _, want := range []string{
		"From: Aangan <no-reply@aangan.in>",
		"To: owner@aangan.in",
		"Subject:",
		"Body line.",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
