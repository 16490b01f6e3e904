// Package mailer は SendGrid v3 API で注文ステータスのメールを送る。
package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// StatusMail はステータス変更メールのテンプレート変数
type StatusMail struct {
	To        string
	FirstName string
	LastName  string
	OrderID   string
	Status    string
}

type SendGridConfig struct {
	APIKey           string
	StatusTemplateID string
	From             string
	// 空なら https://api.sendgrid.com
	BaseURL string
}

// SendGrid は dynamic template でメールを送る
type SendGrid struct {
	cfg    SendGridConfig
	client *rest.Client
}

func NewSendGrid(cfg SendGridConfig, client *http.Client) *SendGrid {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &SendGrid{cfg: cfg, client: &rest.Client{HTTPClient: client}}
}

func (s *SendGrid) statusMessage(m StatusMail) *mail.SGMailV3 {
	msg := mail.NewV3Mail()
	msg.SetFrom(mail.NewEmail("", s.cfg.From))
	msg.SetTemplateID(s.cfg.StatusTemplateID)

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(strings.TrimSpace(m.FirstName+" "+m.LastName), m.To))
	p.SetDynamicTemplateData("firstName", m.FirstName)
	p.SetDynamicTemplateData("lastName", m.LastName)
	p.SetDynamicTemplateData("orderId", m.OrderID)
	p.SetDynamicTemplateData("status", m.Status)
	msg.AddPersonalizations(p)
	return msg
}

// SendStatus は /v3/mail/send を呼ぶ。2xx 以外はエラー。
func (s *SendGrid) SendStatus(ctx context.Context, m StatusMail) error {
	if s.cfg.APIKey == "" || s.cfg.StatusTemplateID == "" {
		return fmt.Errorf("sendgrid is not configured")
	}
	if strings.TrimSpace(m.To) == "" {
		return fmt.Errorf("recipient is required")
	}

	req := sendgrid.GetRequest(s.cfg.APIKey, "/v3/mail/send", s.cfg.BaseURL)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(s.statusMessage(m))

	resp, err := s.client.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := resp.Body
		if len(body) > 1024 {
			body = body[:1024]
		}
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, strings.TrimSpace(body))
	}
	return nil
}
