// Package notify mails the shop when a visitor leaves a contact request.
package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/woodveneer/storefront/internal/domain"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	From string
	// To overrides the recipient; when empty the site contact email is used.
	To       string
	Settings domain.SettingsRepo
	dialer   sender
}

func NewMailer(host string, port int, user, pass, from, to string, settings domain.SettingsRepo) *Mailer {
	return &Mailer{
		From:     from,
		To:       to,
		Settings: settings,
		dialer:   gomail.NewDialer(host, port, user, pass),
	}
}

func (m *Mailer) recipient(ctx context.Context) (string, error) {
	if m.To != "" {
		return m.To, nil
	}
	if m.Settings == nil {
		return "", nil
	}
	s, err := m.Settings.Get(ctx)
	if err != nil {
		return "", err
	}
	return s.ContactEmail, nil
}

func (m *Mailer) NotifyContact(ctx context.Context, c *domain.ContactRequest) error {
	to, err := m.recipient(ctx)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}
	if to == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	if c.Email != nil && *c.Email != "" {
		msg.SetHeader("Reply-To", *c.Email)
	}
	msg.SetHeader("Subject", "Yêu cầu liên hệ mới: "+c.Name)
	msg.SetBody("text/plain", contactBody(c))
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func contactBody(c *domain.ContactRequest) string {
	var b strings.Builder
	line := func(label string, v *string) {
		if v != nil && *v != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, *v)
		}
	}
	fmt.Fprintf(&b, "Họ tên: %s\n", c.Name)
	fmt.Fprintf(&b, "Điện thoại: %s\n", c.Phone)
	line("Email", c.Email)
	line("Địa chỉ", c.Address)
	line("Dịch vụ", c.Service)
	line("Sản phẩm", c.ProductName)
	line("Lời nhắn", c.Message)
	fmt.Fprintf(&b, "Mã yêu cầu: %s\n", c.ID)
	return b.String()
}
