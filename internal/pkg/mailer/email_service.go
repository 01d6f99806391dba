package mailer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

var (
	// ErrMissingCredentials marks a configuration problem: the operator has
	// not supplied SMTP credentials. Surfaced, never a crash.
	ErrMissingCredentials = errors.New("smtp credentials not configured")

	// ErrEmptyBody guards against sending a blank clinical document.
	ErrEmptyBody = errors.New("refusing to send email with empty body")

	// ErrSendTimeout marks a delivery that did not complete in time. A hung
	// SMTP server must never block a subject's turn.
	ErrSendTimeout = errors.New("email send timed out")
)

const defaultSendTimeout = 30 * time.Second

type IEmailService interface {
	// SendReport delivers a compiled triage document to the clinician, with
	// an optional plain-text attachment. Single attempt, no retry.
	SendReport(to, subject, body string, attachment []byte, filename string) error

	// SendRiskAlert delivers the early-warning message emitted when a
	// session first flags crisis keywords.
	SendRiskAlert(to, sessionID string, flaggedAt time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	configured  bool

	sendFn      func(*gomail.Message) error
	sendTimeout time.Duration
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	configured := host != "" && username != "" && password != ""
	dialer := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      dialer,
		senderEmail: username,
		senderName:  senderName,
		configured:  configured,
		sendFn:      func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		sendTimeout: defaultSendTimeout,
	}
}

// send runs the SMTP exchange under a deadline. gomail has no context
// support, so the goroutine is abandoned on timeout; it holds no session
// state and exits when the connection dies.
func (s *emailService) send(m *gomail.Message) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.sendFn(m) }()

	select {
	case err := <-errCh:
		return err
	case <-time.After(s.sendTimeout):
		return ErrSendTimeout
	}
}

func (s *emailService) SendReport(to, subject, body string, attachment []byte, filename string) error {
	if !s.configured {
		return ErrMissingCredentials
	}
	if strings.TrimSpace(body) == "" {
		return ErrEmptyBody
	}
	if to == "" {
		to = s.senderEmail
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if len(attachment) > 0 && filename != "" {
		m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	if err := s.send(m); err != nil {
		return fmt.Errorf("send report to %s: %w", to, err)
	}
	return nil
}

func (s *emailService) SendRiskAlert(to, sessionID string, flaggedAt time.Time) error {
	if !s.configured {
		return ErrMissingCredentials
	}
	if to == "" {
		to = s.senderEmail
	}

	body := fmt.Sprintf(
		"ALERTA DE RISCO IMEDIATO\n\nUma fala relacionada a risco de suicídio ou homicídio foi detectada "+
			"durante uma triagem em andamento.\n\nSessão: %s\nDetectado em: %s\n\n"+
			"O relatório completo será enviado ao final da triagem.",
		sessionID, flaggedAt.Format(time.RFC3339),
	)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "[URGENTE] Alerta de risco em triagem "+sessionID)
	m.SetBody("text/plain", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("send risk alert to %s: %w", to, err)
	}
	return nil
}
