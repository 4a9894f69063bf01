package sender

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realaashishly/korixen-cal/internal/lib/smtp"
	"github.com/realaashishly/korixen-cal/internal/models"
)

type fakeWriteCloser struct {
	buf    bytes.Buffer
	closed bool
}

func (w *fakeWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *fakeWriteCloser) Close() error                { w.closed = true; return nil }

type fakeClient struct {
	from string
	rcpt []string
	data fakeWriteCloser
	quit bool
}

func (c *fakeClient) Mail(from string) error { c.from = from; return nil }
func (c *fakeClient) Rcpt(to string) error   { c.rcpt = append(c.rcpt, to); return nil }
func (c *fakeClient) Data() (io.WriteCloser, error) {
	return &c.data, nil
}
func (c *fakeClient) Quit() error  { c.quit = true; return nil }
func (c *fakeClient) Close() error { return nil }

type fakeTransport struct {
	client *fakeClient
}

func (t *fakeTransport) Connect() (smtp.Client, error) { return t.client, nil }
func (t *fakeTransport) GetSMTPUser() string           { return "noreply@korixen.app" }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSendPaymentReminder(t *testing.T) {
	transport := &fakeTransport{client: &fakeClient{}}
	svc := New(transport, newNoopLogger())

	reminder := models.PaymentReminder{
		Email:           "user@example.com",
		Username:        "testuser",
		SubscriptionID:  "665f1c2b8a9d3e4f5a6b7c8d",
		Name:            "Netflix",
		Price:           decimal.RequireFromString("15.49"),
		Currency:        "USD",
		NextPaymentDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(reminder)
	require.NoError(t, err)

	err = svc.SendPaymentReminder(body)
	require.NoError(t, err)

	assert.Equal(t, "noreply@korixen.app", transport.client.from)
	assert.Equal(t, []string{"user@example.com"}, transport.client.rcpt)
	assert.True(t, transport.client.quit)

	sent := transport.client.data.buf.String()
	assert.Contains(t, sent, "Subject: Напоминание о списании по подписке")
	assert.Contains(t, sent, "testuser")
	assert.Contains(t, sent, "15.49 USD")
	assert.Contains(t, sent, "Netflix")
	assert.Contains(t, sent, "15.04.2024")
}

func TestSendPaymentReminder_BadPayload(t *testing.T) {
	transport := &fakeTransport{client: &fakeClient{}}
	svc := New(transport, newNoopLogger())

	err := svc.SendPaymentReminder([]byte("{not json"))
	assert.Error(t, err)
	// до SMTP дело не дошло
	assert.Empty(t, transport.client.from)
}
