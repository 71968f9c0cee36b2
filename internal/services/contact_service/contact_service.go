package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"

	"github.com/google/uuid"
)

var ErrNotDelivered = errors.New("contact message was neither stored nor delivered")

type MessageSaver interface {
	SaveMessage(ctx context.Context, msg models.ContactMessage) (uuid.UUID, error)
}

type ContactMailer interface {
	SendContact(ctx context.Context, msg models.ContactMessage) error
}

type SubmitResult struct {
	ID       uuid.UUID `json:"id,omitempty"`
	Stored   bool      `json:"stored"`
	Notified bool      `json:"notified"`
}

type ContactService struct {
	log    *slog.Logger
	repo   MessageSaver
	mailer ContactMailer
}

func NewContactService(log *slog.Logger, repo MessageSaver, mailer ContactMailer) *ContactService {
	return &ContactService{
		log:    log,
		repo:   repo,
		mailer: mailer,
	}
}

// Submit stores the message and mails it; it fails only when both do.
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) (*SubmitResult, error) {
	const op = "services.contact_service.Submit"

	log := s.log.With(
		slog.String("op", op),
		slog.String("subject", msg.Subject),
	)

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)

	result := &SubmitResult{}

	id, saveErr := s.repo.SaveMessage(ctx, msg)
	if saveErr != nil {
		log.Error("failed to store contact message", sl.Err(saveErr))
	} else {
		result.ID = id
		result.Stored = true
	}

	mailErr := s.mailer.SendContact(ctx, msg)
	if mailErr != nil {
		log.Warn("failed to send contact notification", sl.Err(mailErr))
	} else {
		result.Notified = true
	}

	if saveErr != nil && mailErr != nil {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrNotDelivered, saveErr, mailErr))
	}

	log.Info("contact message accepted",
		slog.Bool("stored", result.Stored),
		slog.Bool("notified", result.Notified),
	)

	return result, nil
}
