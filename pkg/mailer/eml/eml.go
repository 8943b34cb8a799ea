// Package eml renders composed messages as RFC 5322 documents and provides a
// file transport that stores them as .eml files.
package eml

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zostay/go-email/v2/message"
	"github.com/zostay/go-email/v2/message/transfer"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// DefaultDomain is the Message-ID domain used when none is configured.
const DefaultDomain = "localhost"

// TagsHeader carries message tags in the written document.
const TagsHeader = "X-Tags"

// Option configures document generation.
type Option func(*options)

type options struct {
	domain string
	now    func() time.Time
}

// WithDomain sets the domain part of generated Message-ID values.
func WithDomain(domain string) Option {
	return func(o *options) {
		if domain != "" {
			o.domain = domain
		}
	}
}

// WithClock overrides the time source used for the Date header.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{domain: DefaultDomain, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Build converts msg into a MIME document.
//
// A message with both bodies becomes multipart/alternative with the text part
// first. A message with a single body is written as a single part.
// Attachments wrap the result in multipart/mixed.
// The returned value can be written only once.
func Build(msg *mailer.Message, opts ...Option) (io.WriterTo, error) {
	if msg == nil || !msg.HasBody() {
		return nil, mailer.ErrNoContent
	}
	o := newOptions(opts)

	body, err := buildBody(msg)
	if err != nil {
		return nil, err
	}

	h := body.GetHeader()
	if err := setEnvelope(h, msg, o); err != nil {
		return nil, err
	}
	return body, nil
}

// Write builds msg and writes it to w.
func Write(w io.Writer, msg *mailer.Message, opts ...Option) error {
	doc, err := Build(msg, opts...)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("eml: failed to write message: %w", err)
	}
	return nil
}

// buildBody returns the content tree of msg without the envelope headers.
func buildBody(msg *mailer.Message) (message.Part, error) {
	var content message.Part
	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		alt := &message.Buffer{}
		alt.SetMediaType("multipart/alternative")
		alt.Add(textPart("text/plain", msg.TextBody), textPart("text/html", msg.HTMLBody))
		mp, err := alt.Multipart()
		if err != nil {
			return nil, fmt.Errorf("eml: failed to build alternative part: %w", err)
		}
		content = mp
	case msg.HTMLBody != "":
		content = textPart("text/html", msg.HTMLBody)
	default:
		content = textPart("text/plain", msg.TextBody)
	}

	if len(msg.Attachments) == 0 {
		return content, nil
	}

	mixed := &message.Buffer{}
	mixed.SetMediaType("multipart/mixed")
	mixed.Add(content)
	for _, a := range msg.Attachments {
		p, err := attachmentPart(a)
		if err != nil {
			return nil, err
		}
		mixed.Add(p)
	}
	mp, err := mixed.Multipart()
	if err != nil {
		return nil, fmt.Errorf("eml: failed to build mixed part: %w", err)
	}
	return mp, nil
}

func textPart(mediaType, body string) *message.Opaque {
	p := &message.Opaque{Reader: strings.NewReader(body)}
	p.SetMediaType(mediaType)
	_ = p.SetCharset("utf-8")
	p.SetTransferEncoding(transfer.QuotedPrintable)
	return p
}

func attachmentPart(a mailer.Attachment) (*message.Opaque, error) {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	p := &message.Opaque{Reader: bytes.NewReader(a.Content)}
	p.SetMediaType(contentType)
	p.SetTransferEncoding(transfer.Base64)

	if a.ContentID != "" {
		p.SetPresentation("inline")
		p.Set("Content-ID", "<"+strings.Trim(a.ContentID, "<>")+">")
	} else {
		p.SetPresentation("attachment")
	}
	if a.Filename != "" {
		if err := p.SetFilename(a.Filename); err != nil {
			return nil, fmt.Errorf("eml: invalid attachment filename %q: %w", a.Filename, err)
		}
	}
	return p, nil
}

// headerSetter is the part of the go-email header used for the envelope.
type headerSetter interface {
	Set(name, body string)
	SetSubject(s string)
	SetDate(d time.Time)
	SetMessageID(ref string)
	SetFrom(a ...any) error
	SetTo(a ...any) error
	SetCc(a ...any) error
	SetReplyTo(a ...any) error
}

func setEnvelope(h headerSetter, msg *mailer.Message, o *options) error {
	if msg.From != "" {
		if err := h.SetFrom(msg.From); err != nil {
			return fmt.Errorf("eml: invalid from address %q: %w", msg.From, err)
		}
	}
	if len(msg.To) > 0 {
		if err := h.SetTo(addresses(msg.To)...); err != nil {
			return fmt.Errorf("eml: invalid to address: %w", err)
		}
	}
	if len(msg.CC) > 0 {
		if err := h.SetCc(addresses(msg.CC)...); err != nil {
			return fmt.Errorf("eml: invalid cc address: %w", err)
		}
	}
	if msg.ReplyTo != "" {
		if err := h.SetReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("eml: invalid reply-to address %q: %w", msg.ReplyTo, err)
		}
	}

	h.Set("MIME-Version", "1.0")
	h.SetSubject(msg.Subject)
	h.SetDate(o.now())
	h.SetMessageID(fmt.Sprintf("<%s@%s>", uuid.NewString(), o.domain))

	for _, name := range slices.Sorted(maps.Keys(msg.Headers)) {
		h.Set(name, msg.Headers[name])
	}
	if tags := formatTags(msg.Tags); tags != "" {
		h.Set(TagsHeader, tags)
	}
	return nil
}

func addresses(list []string) []any {
	out := make([]any, len(list))
	for i, a := range list {
		out[i] = a
	}
	return out
}

// formatTags renders tags as a sorted comma separated list.
// Presence-only tags are written by name, others as name=value.
func formatTags(tags mailer.Tags) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, name := range slices.Sorted(maps.Keys(tags)) {
		switch v := tags[name].(type) {
		case struct{}, nil:
			parts = append(parts, name)
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	return strings.Join(parts, ", ")
}
