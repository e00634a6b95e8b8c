package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func TestMailer_SendRaw_Success(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mailer := New(mockSender, Config{})

	email := &Email{
		To:      []string{"user@example.com"},
		Subject: "Test Subject",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
	}

	mockSender.On("Send", mock.Anything, email).Return(nil)

	err := mailer.SendRaw(context.Background(), email)

	require.NoError(t, err)
	mockSender.AssertExpectations(t)
}

func TestMailer_SendRaw_NoRecipient(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mailer := New(mockSender, Config{})

	email := &Email{
		To:      []string{},
		Subject: "Test",
		HTML:    "<p>Hello</p>",
	}

	err := mailer.SendRaw(context.Background(), email)

	require.ErrorIs(t, err, ErrNoRecipient)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_SendRaw_NoSubject(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mailer := New(mockSender, Config{})

	email := &Email{
		To:      []string{"user@example.com"},
		Subject: "",
		HTML:    "<p>Hello</p>",
	}

	err := mailer.SendRaw(context.Background(), email)

	require.ErrorIs(t, err, ErrNoSubject)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_SendRaw_NoContent(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mailer := New(mockSender, Config{})

	email := &Email{
		To:      []string{"user@example.com"},
		Subject: "Test",
		HTML:    "",
	}

	err := mailer.SendRaw(context.Background(), email)

	require.ErrorIs(t, err, ErrNoContent)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_SendRaw_SenderFailure(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mailer := New(mockSender, Config{})

	email := &Email{
		To:      []string{"user@example.com"},
		Subject: "Test",
		HTML:    "<p>Hello</p>",
	}

	senderErr := errors.New("network error")
	mockSender.On("Send", mock.Anything, email).Return(senderErr)

	err := mailer.SendRaw(context.Background(), email)

	require.Error(t, err)
	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, senderErr)
	mockSender.AssertExpectations(t)
}

func TestMailer_SendTest(t *testing.T) {
	t.Parallel()

	t.Run("prefixes subject once", func(t *testing.T) {
		t.Parallel()

		mockSender := &MockSender{}
		mailer := New(mockSender, Config{TestSubjectPrefix: "[TEST] "})

		mockSender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
			return len(email.To) == 1 &&
				email.To[0] == "qa@example.com" &&
				email.Subject == "[TEST] Letter to Theo - Sunday, July 14, 2024" &&
				email.Text == "plain"
		})).Return(nil).Twice()

		err := mailer.SendTest(context.Background(), "qa@example.com", "Letter to Theo - Sunday, July 14, 2024", "<p>x</p>", "plain")
		require.NoError(t, err)

		err = mailer.SendTest(context.Background(), "qa@example.com", "[TEST] Letter to Theo - Sunday, July 14, 2024", "<p>x</p>", "plain")
		require.NoError(t, err)
		mockSender.AssertExpectations(t)
	})

	t.Run("requires recipient", func(t *testing.T) {
		t.Parallel()

		mockSender := &MockSender{}
		mailer := New(mockSender, Config{})

		err := mailer.SendTest(context.Background(), "", "Subject", "<p>x</p>", "")
		require.ErrorIs(t, err, ErrNoRecipient)
		mockSender.AssertNotCalled(t, "Send")
	})
}
