package email

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"storefront-backend/pkg/logger"
)

var ErrNoRecipients = errors.New("email has no recipients")

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

type smtpEmailService struct {
	dialer *gomail.Dialer
	from   string
	addr   string
}

func NewSMTPEmailService(settings SMTPSettings) EmailService {
	dialer := gomail.NewDialer(settings.Host, settings.Port, settings.Username, settings.Password)
	return &smtpEmailService{
		dialer: dialer,
		from:   settings.From,
		addr:   fmt.Sprintf("%s:%d", settings.Host, settings.Port),
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.from, req)

	// gomail has no context support; the send keeps running in the background
	// when ctx expires but the caller is released.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Info("Failed to send email", map[string]interface{}{
				"error":     err.Error(),
				"to":        req.To,
				"smtp_addr": s.addr,
			})
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send email: %w", ctx.Err())
	}
}

func buildMessage(from string, req EmailRequest) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", req.To...)
	if len(req.Cc) > 0 {
		m.SetHeader("Cc", req.Cc...)
	}
	m.SetHeader("Subject", req.Subject)

	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}
	m.SetBody(contentType, req.Body)

	for _, a := range req.Attachments {
		content := a.Content
		m.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	return m
}
