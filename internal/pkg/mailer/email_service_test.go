package mailer

import (
	"testing"

	"cassie-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWithoutSMTPIsSkipped(t *testing.T) {
	svc := NewEmailService("", 587, "noreply@cassie.app", "", "Cassie", logger.NewNopLogger())

	assert.NoError(t, svc.SendConfirmationLink("ana@example.com", "Ana", "https://cassie.app/verify?token=abc"))
	assert.NoError(t, svc.SendPlanReceipt("ana@example.com", "Ana", "Spark", 2900, "USD"))
}

func TestNewMessageHeaders(t *testing.T) {
	svc := NewEmailService("", 587, "noreply@cassie.app", "", "Cassie", logger.NewNopLogger()).(*emailService)

	raw, err := render(svc.newMessage("ana@example.com", "Confirm your email", "<p>hi</p>"))
	require.NoError(t, err)
	assert.Contains(t, raw, "To: ana@example.com")
	assert.Contains(t, raw, "Subject: Confirm your email")
	assert.Contains(t, raw, `From: "Cassie" <noreply@cassie.app>`)
}
