package mailer

import "fmt"

// Tags represents message tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// Transports translate them into their own format:
//   - Resend: uses name-value pairs (presence-only tags become name="true")
//   - eml: written as the X-Tags header
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Params holds name-value pairs made available to views.
type Params map[string]any

// Message is a mail message being composed.
// Composer and Template write only Subject, HTMLBody and TextBody.
type Message struct {
	Headers     map[string]string // Custom headers
	Tags        Tags              // Transport-specific tags/categories
	Subject     string            // Message subject
	HTMLBody    string            // HTML body content
	TextBody    string            // Plain text alternative
	From        string            // Sender address
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required to send)
	CC          []string          // Carbon copy recipients
	BCC         []string          // Blind carbon copy recipients
	Attachments []Attachment      // File attachments
}

// Attachment represents a message attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Optional Content-ID for inline attachments
	Content     []byte // Raw file content
}

// HasBody reports whether at least one of the bodies is set.
func (m *Message) HasBody() bool {
	return m.HTMLBody != "" || m.TextBody != ""
}
