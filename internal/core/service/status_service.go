package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

const (
	successSubject = "Completed The Order"
	successBody    = "Thank you for your trust and the opportunity for us to serve you.\n%s\nPlease click on the link below to rate product's quality:"

	failureSubject = "Fail The Order"
	failureBody    = "Thanks for your interest in our products.\n%s\nTo purchase next time, please click on the link:"
)

type statusService struct {
	repo     ports.DeliveryRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewStatusService returns a StatusService that persists terminal transitions
// and notifies the recipient by e-mail.
func NewStatusService(repo ports.DeliveryRepository, notifier ports.Notifier, log zerolog.Logger) ports.StatusService {
	return &statusService{repo: repo, notifier: notifier, log: log}
}

// Transition moves the delivery to its terminal status, stamps the completion
// time, persists, and sends exactly one notification. The notification is
// fire-and-forget: a send failure is logged and the committed transition is
// still reported as success. Re-invocation is not guarded; calling twice
// overwrites the timestamp and re-sends the e-mail.
func (s *statusService) Transition(ctx context.Context, deliveryID string, succeeded bool) (*domain.Delivery, error) {
	delivery, err := s.repo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("transition: %w", err)
	}

	now := time.Now().UTC()
	if succeeded {
		delivery.Status = domain.StatusDeliveredSuccessfully
	} else {
		delivery.Status = domain.StatusDeliveryFailed
	}
	delivery.DeliveredAt = &now

	saved, err := s.repo.Save(ctx, delivery)
	if err != nil {
		return nil, fmt.Errorf("transition: persist: %w", err)
	}

	subject, body := failureSubject, failureBody
	if succeeded {
		subject, body = successSubject, successBody
	}
	if err := s.notifier.Send(ctx, saved.Email, subject, fmt.Sprintf(body, saved.RecipientName)); err != nil {
		s.log.Warn().Err(err).
			Str("delivery_id", saved.ID).
			Str("email", saved.Email).
			Msg("notification failed after committed transition")
	}

	s.log.Info().
		Str("delivery_id", saved.ID).
		Str("status", string(saved.Status)).
		Msg("delivery status transitioned")

	return saved, nil
}
