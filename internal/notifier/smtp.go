// Package notifier は低在庫アラートなどを送るNotificationSinkの実装。
package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	To       string
}

func (c SMTPConfig) complete() bool {
	return c.Host != "" && c.User != "" && c.Password != "" && c.From != "" && c.To != ""
}

// EmailNotifier はSMTPでアラートメールを送る。
// 設定が未完ならスキップするだけで、エラーにはしない。
type EmailNotifier struct {
	cfg SMTPConfig
	log *zap.Logger
}

func NewEmailNotifier(cfg SMTPConfig, log *zap.Logger) *EmailNotifier {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &EmailNotifier{cfg: cfg, log: log}
}

func (n *EmailNotifier) Notify(ctx context.Context, subject string, body string) error {
	if !n.cfg.complete() {
		n.log.Info("email settings not configured, skipping notification", zap.String("subject", subject))
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.cfg.From, n.cfg.To, subject, body))
	addr := n.cfg.Host + ":" + n.cfg.Port
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)

	return smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.To}, msg)
}
