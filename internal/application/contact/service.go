package contact

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Mailer defines the interface for outbound mail delivery.
// Implemented by the infrastructure layer (SMTP).
type Mailer interface {
	// Send delivers a plain-text message to the given recipients
	Send(ctx context.Context, to []string, subject, body string) error
}

// ContactRequest represents a message sent through the contact form
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Message string `json:"message" binding:"required,min=1,max=600"`
}

// Service forwards contact-form submissions to site staff by mail
type Service struct {
	mailer     Mailer
	recipients []string
	logger     *zap.Logger
}

// NewService creates a new contact Service
func NewService(mailer Mailer, recipients []string, logger *zap.Logger) *Service {
	return &Service{
		mailer:     mailer,
		recipients: recipients,
		logger:     logger,
	}
}

// Send forwards a contact-form message to the configured recipients
func (s *Service) Send(ctx context.Context, req ContactRequest) error {
	body := fmt.Sprintf("From: %s\n%s", req.Name, req.Message)
	if err := s.mailer.Send(ctx, s.recipients, "Site message", body); err != nil {
		s.logger.Error("failed to send contact message", zap.Error(err))
		return err
	}

	s.logger.Info("forwarded contact message", zap.String("name", req.Name))
	return nil
}
