// Package email composes and sends the three message kinds of the
// lead-capture flow: verification, asset delivery and resend confirmation.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/guiaemprende/backend/internal/config"
	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/guiaemprende/backend/internal/token"
	"github.com/wneessen/go-mail"
)

const (
	// VerificationTokenTTL is how long an initial verification link stays valid.
	VerificationTokenTTL = time.Hour
	// ResendTokenTTL is how long a resend-confirmation link stays valid.
	ResendTokenTTL = 24 * time.Hour
)

// ErrDispatch wraps any SMTP transport failure. The gateway does not retry;
// retry policy belongs to the queue consumer.
var ErrDispatch = errors.New("email dispatch failed")

// Service is the email dispatch gateway.
type Service struct {
	cfg     *config.SMTPConfig
	tokens  *token.Service
	baseURL string
}

// NewService creates the gateway. baseURL is the public API base embedded
// in verification and resend links.
func NewService(cfg *config.SMTPConfig, tokens *token.Service, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, errors.New("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		tokens:  tokens,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// VerificationLink issues a fresh short-lived token for the recipient and
// returns the browser link embedded in the verification email.
func (s *Service) VerificationLink(email string) (string, error) {
	tok, err := s.tokens.Issue(email, VerificationTokenTTL)
	if err != nil {
		return "", fmt.Errorf("issuing verification token: %w", err)
	}
	return fmt.Sprintf("%s/api/users/verify-email?token=%s", s.baseURL, url.QueryEscape(tok)), nil
}

// ResendLink issues a longer-lived token for the recipient and returns the
// confirmation link embedded in the resend email.
func (s *Service) ResendLink(email string) (string, error) {
	tok, err := s.tokens.Issue(email, ResendTokenTTL)
	if err != nil {
		return "", fmt.Errorf("issuing resend token: %w", err)
	}
	return fmt.Sprintf("%s/api/users/resend-file?token=%s", s.baseURL, url.QueryEscape(tok)), nil
}

// SendVerification sends the email-verification message.
func (s *Service) SendVerification(ctx context.Context, to, nombre string) error {
	verifyURL, err := s.VerificationLink(to)
	if err != nil {
		return err
	}

	subject := i18n.T(ctx, "email_verification_subject")
	body := i18n.TData(ctx, "email_verification_body", map[string]any{
		"Nombre":    nombre,
		"VerifyURL": verifyURL,
	})

	return s.send(ctx, to, subject, body, "")
}

// SendFile sends the guide with the asset attached.
func (s *Service) SendFile(ctx context.Context, to, nombre, filePath string) error {
	subject := i18n.T(ctx, "email_file_subject")
	body := i18n.TData(ctx, "email_file_body", map[string]any{
		"Nombre": nombre,
	})

	return s.send(ctx, to, subject, body, filePath)
}

// SendResendConfirmation asks the recipient to confirm they want the guide
// again.
func (s *Service) SendResendConfirmation(ctx context.Context, to, nombre string) error {
	resendURL, err := s.ResendLink(to)
	if err != nil {
		return err
	}

	subject := i18n.T(ctx, "email_resend_subject")
	body := i18n.TData(ctx, "email_resend_body", map[string]any{
		"Nombre":    nombre,
		"ResendURL": resendURL,
	})

	return s.send(ctx, to, subject, body, "")
}

// send delivers one message via SMTP, optionally attaching a local file.
func (s *Service) send(ctx context.Context, to, subject, body, attachment string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if attachment != "" {
		msg.AttachFile(attachment)
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS on 465, STARTTLS otherwise
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	return nil
}
