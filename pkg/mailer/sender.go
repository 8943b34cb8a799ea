package mailer

import "context"

// Sender defines the minimal interface that mail transports must implement.
// It accepts a composed Message and handles the actual delivery.
type Sender interface {
	// Send delivers a message.
	// The Message must have To, Subject and at least one body already set.
	Send(ctx context.Context, msg *Message) error
}

// SenderFunc adapts an ordinary function to the Sender interface.
type SenderFunc func(ctx context.Context, msg *Message) error

// Send calls f(ctx, msg).
func (f SenderFunc) Send(ctx context.Context, msg *Message) error {
	return f(ctx, msg)
}
