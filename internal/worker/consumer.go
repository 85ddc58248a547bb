package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aangan-site/aangan-api/internal/logger"
	"github.com/aangan-site/aangan-api/internal/provider"
	"github.com/aangan-site/aangan-api/internal/queue"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskIntakeEmail, c.handleIntakeEmail)
	mux.HandleFunc(queue.TaskTestEmail, c.handleTestEmail)
}

func (c *Consumer) handleIntakeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.IntakeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_intake_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Kind) == "" {
		logger.Debugw("worker_intake_email_skip_empty_kind")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_intake_email_skip_email_service_nil", "kind", payload.Kind)
		return nil
	}

	err := c.EmailService.SendIntakeNotification(payload.Kind, payload.Fields)
	if err != nil {
		// A disabled or unconfigured mailer is an operator choice, not
		// a retryable failure.
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_intake_email_skip_unconfigured", "kind", payload.Kind)
			return nil
		}
		logger.Warnw("worker_intake_email_send_failed", "kind", payload.Kind, "error", err)
		return err
	}
	logger.Infow("worker_intake_email_sent", "kind", payload.Kind)
	return nil
}

func (c *Consumer) handleTestEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.TestEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_test_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.To) == "" {
		logger.Debugw("worker_test_email_skip_empty_receiver")
		return nil
	}
	if c.EmailService == nil {
		return nil
	}

	if err := c.EmailService.SendCustomEmail(payload.To, payload.Subject, payload.Body); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			return nil
		}
		logger.Warnw("worker_test_email_send_failed", "to", payload.To, "error", err)
		return err
	}
	logger.Infow("worker_test_email_sent", "to", payload.To)
	return nil
}
