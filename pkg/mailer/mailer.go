package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mailcompose/pkg/logger"
)

// Mailer composes messages from views and hands them to a Sender.
type Mailer struct {
	composer *Composer
	sender   Sender
	logger   *slog.Logger
	config   Config
}

// New creates a new Mailer with the given composer and sender.
func New(composer *Composer, sender Sender, cfg Config, opts ...Option) *Mailer {
	o := applyOptions(opts)
	return &Mailer{
		composer: composer,
		sender:   sender,
		config:   cfg,
		logger:   o.logger,
	}
}

// Composer returns the composer used to render messages.
func (m *Mailer) Composer() *Composer {
	return m.composer
}

// Compose creates a new message from spec and params.
// Subject resolution: view frontmatter > config fallback.
func (m *Mailer) Compose(spec ViewSpec, params Params) (*Message, error) {
	msg := &Message{From: m.config.From}
	if err := m.composer.Compose(msg, spec, params); err != nil {
		return nil, err
	}
	if msg.Subject == "" {
		msg.Subject = m.config.FallbackSubject
	}
	return msg, nil
}

// Send validates msg and delivers it through the sender.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if msg == nil {
		return ErrNoMessage
	}
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}
	if msg.Subject == "" {
		return ErrNoSubject
	}
	if !msg.HasBody() {
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.ErrorContext(ctx, "failed to send message",
			slog.Any("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()),
		)
		return errors.Join(ErrSendFailed, err)
	}

	m.logger.InfoContext(ctx, "message sent",
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// SendMultiple sends messages one by one and returns how many were sent.
// Failures do not stop the remaining messages; their errors are joined.
func (m *Mailer) SendMultiple(ctx context.Context, msgs []*Message) (int, error) {
	var (
		sent int
		errs []error
	)
	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := m.Send(logger.WithAttrs(ctx, slog.Int("batch_index", i)), msg); err != nil {
			errs = append(errs, fmt.Errorf("message %d: %w", i, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
