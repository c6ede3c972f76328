package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/woodveneer/storefront/internal/adapters/repo/memory"
	"github.com/woodveneer/storefront/internal/domain"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func lead() *domain.ContactRequest {
	email := "khach@example.com"
	msg := "Báo giá vân óc chó"
	return &domain.ContactRequest{ID: uuid.New(), Name: "Minh", Phone: "0912345678", Email: &email, Message: &msg}
}

func TestNotifyContactUsesConfiguredRecipient(t *testing.T) {
	fs := &fakeSender{}
	m := &Mailer{From: "shop@example.com", To: "sales@example.com", dialer: fs}

	require.NoError(t, m.NotifyContact(context.Background(), lead()))
	require.Len(t, fs.sent, 1)
	msg := fs.sent[0]
	assert.Equal(t, []string{"sales@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"khach@example.com"}, msg.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.String())
}

func TestNotifyContactFallsBackToSiteEmail(t *testing.T) {
	fs := &fakeSender{}
	store := memory.New()
	m := &Mailer{From: "shop@example.com", Settings: store.Settings(), dialer: fs}

	require.NoError(t, m.NotifyContact(context.Background(), lead()))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, []string{domain.DefaultSettings().ContactEmail}, fs.sent[0].GetHeader("To"))
}

func TestNotifyContactWithoutRecipientIsNoop(t *testing.T) {
	fs := &fakeSender{}
	m := &Mailer{dialer: fs}
	require.NoError(t, m.NotifyContact(context.Background(), lead()))
	assert.Empty(t, fs.sent)
}

func TestNotifyContactSendError(t *testing.T) {
	m := &Mailer{To: "a@b.c", dialer: &fakeSender{err: errors.New("dial tcp: refused")}}
	err := m.NotifyContact(context.Background(), lead())
	assert.ErrorContains(t, err, "send mail")
}

func TestContactBodySkipsEmptyFields(t *testing.T) {
	c := lead()
	c.Address = nil
	body := contactBody(c)
	assert.Contains(t, body, "Họ tên: Minh")
	assert.Contains(t, body, "Lời nhắn: Báo giá vân óc chó")
	assert.NotContains(t, body, "Địa chỉ")
}
