package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail over plain SMTP. This is the default transport and
// works against local development relays such as Mailtrap.
type SMTPMailer struct {
	host        string
	port        int
	username    string
	password    string
	fromAddress string
	logger      *slog.Logger
}

func NewSMTPMailer(host string, port int, username, password, fromAddress string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, toAddress, name, code string, expiresAt time.Time) error {
	htmlBody, textBody := buildResetCodeBodies(name, code, expiresAt)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.fromAddress)
	msg.SetHeader("To", toAddress)
	msg.SetHeader("Subject", resetCodeSubject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	// gomail has no context support, so the dial runs in its own goroutine
	// and is raced against cancellation. An abandoned dial finishes (or times
	// out at the TCP layer) on its own; the buffered channel lets the
	// goroutine exit either way.
	errCh := make(chan error, 1)
	go func() {
		d := gomail.NewDialer(m.host, m.port, m.username, m.password)
		errCh <- d.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		m.logger.Warn("reset code send abandoned", slog.Any("error", ctx.Err()))
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			m.logger.Error("failed to send reset code via SMTP",
				slog.String("email", toAddress),
				slog.Any("error", err))
			return fmt.Errorf("send email: %w", err)
		}
	}

	m.logger.Info("reset code email sent", slog.String("email", toAddress))
	return nil
}
