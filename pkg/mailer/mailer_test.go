package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcompose/pkg/logger"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newTestMailer(sender Sender, cfg Config) *Mailer {
	return New(NewComposer(newStubView(), "mail"), sender, cfg)
}

func TestMailer_Compose_Success(t *testing.T) {
	t.Parallel()

	m := newTestMailer(&MockSender{}, Config{From: "team@example.com", FallbackSubject: "Notification"})

	msg, err := m.Compose(Single("welcome"), Params{"name": "Alice"})
	require.NoError(t, err)

	require.Equal(t, "team@example.com", msg.From)
	require.Equal(t, "Welcome Alice", msg.Subject)
	require.Contains(t, msg.HTMLBody, "<p>Welcome!</p>")
	require.Equal(t, "Welcome!", msg.TextBody)
}

func TestMailer_Compose_FallbackSubject(t *testing.T) {
	t.Parallel()

	m := newTestMailer(&MockSender{}, Config{FallbackSubject: "Notification"})

	msg, err := m.Compose(Single("contact"), Params{"name": "Alice"})
	require.NoError(t, err)
	require.Equal(t, "Notification", msg.Subject)
}

func TestMailer_Compose_Failure(t *testing.T) {
	t.Parallel()

	m := newTestMailer(&MockSender{}, Config{})

	msg, err := m.Compose(Single("nonexistent"), nil)
	require.ErrorIs(t, err, ErrViewNotFound)
	require.Nil(t, msg)
}

func TestMailer_Send_Success(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	m := newTestMailer(mockSender, Config{FallbackSubject: "Notification"})

	msg, err := m.Compose(Single("welcome"), Params{"name": "Alice"})
	require.NoError(t, err)
	msg.To = []string{"alice@example.com"}

	mockSender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.To[0] == "alice@example.com" &&
			msg.Subject == "Welcome Alice" &&
			len(msg.HTMLBody) > 0 &&
			len(msg.TextBody) > 0
	})).Return(nil)

	require.NoError(t, m.Send(context.Background(), msg))
	mockSender.AssertExpectations(t)
}

func TestMailer_Send_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{
			name:    "nil message",
			msg:     nil,
			wantErr: ErrNoMessage,
		},
		{
			name:    "no recipient",
			msg:     &Message{Subject: "Test", HTMLBody: "<p>Hello</p>"},
			wantErr: ErrNoRecipient,
		},
		{
			name:    "no subject",
			msg:     &Message{To: []string{"user@example.com"}, HTMLBody: "<p>Hello</p>"},
			wantErr: ErrNoSubject,
		},
		{
			name:    "no content",
			msg:     &Message{To: []string{"user@example.com"}, Subject: "Test"},
			wantErr: ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSender := &MockSender{}
			m := newTestMailer(mockSender, Config{})

			err := m.Send(context.Background(), tt.msg)

			require.ErrorIs(t, err, tt.wantErr)
			mockSender.AssertNotCalled(t, "Send")
		})
	}
}

func TestMailer_Send_TextOnlyIsValid(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	m := newTestMailer(mockSender, Config{})

	msg := &Message{To: []string{"user@example.com"}, Subject: "Test", TextBody: "Hello"}
	mockSender.On("Send", mock.Anything, msg).Return(nil)

	require.NoError(t, m.Send(context.Background(), msg))
	mockSender.AssertExpectations(t)
}

func TestMailer_Send_SenderFailure(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	m := newTestMailer(mockSender, Config{})

	msg := &Message{
		To:       []string{"user@example.com"},
		Subject:  "Test",
		HTMLBody: "<p>Hello</p>",
	}

	senderErr := errors.New("smtp connection failed")
	mockSender.On("Send", mock.Anything, msg).Return(senderErr)

	err := m.Send(context.Background(), msg)

	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, senderErr)
	mockSender.AssertExpectations(t)
}

func TestMailer_SendMultiple(t *testing.T) {
	t.Parallel()

	senderErr := errors.New("rejected")
	sender := SenderFunc(func(_ context.Context, msg *Message) error {
		if msg.To[0] == "bad@example.com" {
			return senderErr
		}
		return nil
	})
	m := newTestMailer(sender, Config{})

	newMsg := func(to string) *Message {
		return &Message{To: []string{to}, Subject: "Hi", TextBody: "Hello"}
	}

	sent, err := m.SendMultiple(context.Background(), []*Message{
		newMsg("a@example.com"),
		newMsg("bad@example.com"),
		newMsg("b@example.com"),
		{Subject: "no recipient", TextBody: "x"},
	})

	require.Equal(t, 2, sent)
	require.ErrorIs(t, err, senderErr)
	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestMailer_SendMultiple_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	m := newTestMailer(mockSender, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, err := m.SendMultiple(ctx, []*Message{
		{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "Hello"},
	})

	require.Zero(t, sent)
	require.ErrorIs(t, err, context.Canceled)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_SendMultiple_LogsBatchIndex(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{}, logger.ContextAttrs)
	sender := SenderFunc(func(context.Context, *Message) error { return errors.New("rejected") })
	m := New(NewComposer(newStubView(), "mail"), sender, Config{}, WithLogger(log))

	_, err := m.SendMultiple(context.Background(), []*Message{
		{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "Hello"},
	})

	require.Error(t, err)
	require.Contains(t, buf.String(), `"ctx":{"batch_index":0}`)
}
