package queue

import (
	"encoding/json"

	"github.com/aangan-site/aangan-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskIntakeEmail notifies the site owner about a form submission.
	TaskIntakeEmail = constants.TaskIntakeEmail
	// TaskTestEmail verifies the SMTP configuration.
	TaskTestEmail = constants.TaskTestEmail
)

// IntakeEmailPayload is the intake notification task payload.
type IntakeEmailPayload struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// TestEmailPayload is the SMTP test task payload.
type TestEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewIntakeEmailTask creates an intake notification task.
func NewIntakeEmailTask(payload IntakeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIntakeEmail, body), nil
}

// NewTestEmailTask creates an SMTP test task.
func NewTestEmailTask(payload TestEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTestEmail, body), nil
}
