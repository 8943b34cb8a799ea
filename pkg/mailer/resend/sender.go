// Package resend delivers composed messages through the Resend API.
package resend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

var _ mailer.Sender = (*Sender)(nil)

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailer.Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, s.request(msg))
	if err != nil {
		return fmt.Errorf("resend: failed to send message: %w", err)
	}
	return nil
}

// request maps a message onto the Resend API payload.
func (s *Sender) request(msg *mailer.Message) *resend.SendEmailRequest {
	from := msg.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
		Text:    msg.TextBody,
		ReplyTo: msg.ReplyTo,
		Cc:      msg.CC,
		Bcc:     msg.BCC,
		Headers: msg.Headers,
	}

	if len(msg.Attachments) > 0 {
		req.Attachments = make([]*resend.Attachment, len(msg.Attachments))
		for i, a := range msg.Attachments {
			req.Attachments[i] = &resend.Attachment{
				Filename:    a.Filename,
				Content:     a.Content,
				ContentType: a.ContentType,
				ContentId:   a.ContentID,
			}
		}
	}

	if len(msg.Tags) > 0 {
		req.Tags = make([]resend.Tag, 0, len(msg.Tags))
		for name, value := range msg.Tags {
			req.Tags = append(req.Tags, resend.Tag{Name: name, Value: tagValue(value)})
		}
	}

	return req
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
