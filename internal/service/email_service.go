package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendWelcome(ctx context.Context, toEmail, username string) error
}

// NoopEmailService используется, когда ключ Resend не задан
type NoopEmailService struct {
	logger *zap.Logger
}

// NewNoopEmailService создает заглушку отправки писем
func NewNoopEmailService(logger *zap.Logger) *NoopEmailService {
	return &NoopEmailService{logger: logger.Named("EmailService")}
}

func (s *NoopEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	s.logger.Debug("noop send welcome email", zap.String("to", toEmail))
	return nil
}

// ResendEmailService отправляет письма через Resend REST API
type ResendEmailService struct {
	from   string
	client *resend.Client
}

// NewResendEmailService создает отправителя писем через Resend
func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Welcome to Quizpang",
		Text:    fmt.Sprintf("Hi %s! Your account is ready. Create a quiz or solve one to climb the rankings.", username),
		Html:    fmt.Sprintf("<p>Hi <strong>%s</strong>!</p><p>Your account is ready. Create a quiz or solve one to climb the rankings.</p>", html.EscapeString(username)),
	}

	// Повторная отправка с тем же ключом не приводит к дублю письма
	options := &resend.SendEmailOptions{IdempotencyKey: "welcome/" + strings.ToLower(toEmail)}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		wait, ok := resendRetryDelay(err, attempt)
		if !ok {
			return fmt.Errorf("resend send failed: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}
	return 0, false
}
