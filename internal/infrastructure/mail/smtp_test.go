package mail

import (
	"context"
	"testing"

	"github.com/booktime/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSMTPMailer_buildMessage(t *testing.T) {
	mailer := NewSMTPMailer(config.MailConfig{
		Host: "localhost",
		Port: 1025,
		From: "site@booktime.domain",
	})

	msg := string(mailer.buildMessage(
		[]string{"customerservice@booktime.domain"},
		"Site message",
		"From: John Kimball\nPlease send me a copy of the catalogue",
	))

	assert.Contains(t, msg, "From: site@booktime.domain\r\n")
	assert.Contains(t, msg, "To: customerservice@booktime.domain\r\n")
	assert.Contains(t, msg, "Subject: Site message\r\n")
	assert.Contains(t, msg, "\r\n\r\nFrom: John Kimball\nPlease send me a copy of the catalogue")
}

func TestLogMailer_Send(t *testing.T) {
	mailer := NewLogMailer(zap.NewNop())

	err := mailer.Send(context.Background(), []string{"customerservice@booktime.domain"}, "Site message", "hello")

	assert.NoError(t, err)
}
