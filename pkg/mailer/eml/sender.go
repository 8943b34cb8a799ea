package eml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailcompose/pkg/mailer"
)

// FileSender implements mailer.Sender by writing every message to a
// directory as an .eml file. It is meant for development and tests.
type FileSender struct {
	dir  string
	opts []Option
}

var _ mailer.Sender = (*FileSender)(nil)

// NewFileSender creates a sender storing messages in dir.
// The directory is created on first use.
func NewFileSender(dir string, opts ...Option) *FileSender {
	return &FileSender{dir: dir, opts: opts}
}

// Dir returns the directory messages are written to.
func (s *FileSender) Dir() string {
	return s.dir
}

// Send implements mailer.Sender.
func (s *FileSender) Send(ctx context.Context, msg *mailer.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.write(msg)
	return err
}

// write stores msg and returns the path of the created file.
func (s *FileSender) write(msg *mailer.Message) (string, error) {
	doc, err := Build(msg, s.opts...)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("eml: failed to create directory: %w", err)
	}

	name := filepath.Join(s.dir, fmt.Sprintf("%d-%s.eml", time.Now().UnixNano(), uuid.NewString()))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("eml: failed to create file: %w", err)
	}

	if _, err := doc.WriteTo(f); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("eml: failed to write message: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("eml: failed to close file: %w", err)
	}
	return name, nil
}
