package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gopkg.in/gomail.v2"
)

func newTestService(sendFn func(*gomail.Message) error, timeout time.Duration) *emailService {
	return &emailService{
		senderEmail: "bot@example.com",
		senderName:  "Triagem",
		configured:  true,
		sendFn:      sendFn,
		sendTimeout: timeout,
	}
}

func TestSendReport_RefusesEmptyBody(t *testing.T) {
	svc := newTestService(func(*gomail.Message) error { return nil }, time.Second)

	err := svc.SendReport("to@example.com", "assunto", "   ", nil, "")
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestSendReport_UnconfiguredIsConfigurationError(t *testing.T) {
	svc := NewEmailService("", 587, "", "", "Triagem")

	err := svc.SendReport("to@example.com", "assunto", "corpo", nil, "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSendReport_TimesOutOnHungServer(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	svc := newTestService(func(*gomail.Message) error {
		<-block
		return nil
	}, 50*time.Millisecond)

	start := time.Now()
	err := svc.SendReport("to@example.com", "assunto", "corpo", nil, "")

	assert.ErrorIs(t, err, ErrSendTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSendReport_DeliversWithinDeadline(t *testing.T) {
	sent := 0
	svc := newTestService(func(*gomail.Message) error {
		sent++
		return nil
	}, time.Second)

	err := svc.SendReport("", "assunto", "corpo", []byte("anexo"), "relatorio.txt")
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSendRiskAlert_TimesOutOnHungServer(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	svc := newTestService(func(*gomail.Message) error {
		<-block
		return nil
	}, 50*time.Millisecond)

	err := svc.SendRiskAlert("to@example.com", "sess-1", time.Now())
	assert.ErrorIs(t, err, ErrSendTimeout)
}
