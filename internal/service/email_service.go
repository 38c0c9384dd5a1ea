package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/constants"
)

const (
	localeFR = "fr"
	localeEN = "en"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// SendVerificationCode 发送登录验证码邮件
func (s *EmailService) SendVerificationCode(toEmail, code, locale string) error {
	subject, body := buildVerificationCodeContent(code, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// FormStatusEmailInput 同意书状态邮件输入
type FormStatusEmailInput struct {
	FormID     string
	FormType   string
	Status     string
	ParentName string
}

// SendFormStatusEmail 发送同意书状态变更通知
func (s *EmailService) SendFormStatusEmail(toEmail string, input FormStatusEmailInput, locale string) error {
	subject, body := buildFormStatusContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "Courriel de test SMTP"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "Ceci est un courriel de test de la Garderie Les Petits Moulins. La configuration SMTP fonctionne."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildVerificationCodeContent(code, locale string) (string, string) {
	switch normalizeLocale(locale) {
	case localeEN:
		subject := "Your verification code"
		body := fmt.Sprintf("Your verification code is: %s\n\nThis code expires in 10 minutes. Do not share it.", code)
		return subject, body
	default:
		subject := "Votre code de vérification"
		body := fmt.Sprintf("Votre code de vérification est : %s\n\nCe code expire dans 10 minutes. Ne le partagez avec personne.", code)
		return subject, body
	}
}

func buildFormStatusContent(input FormStatusEmailInput, locale string) (string, string) {
	name := strings.TrimSpace(input.ParentName)
	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch normalizeLocale(locale) {
	case localeEN:
		if name == "" {
			name = "Parent"
		}
		subject := fmt.Sprintf("Consent form %s: %s", input.FormID, statusLabelEN(status))
		body := fmt.Sprintf("Hello %s,\n\nYour consent form %s (%s) is now: %s.\n\nThe Les Petits Moulins team",
			name, input.FormID, input.FormType, statusLabelEN(status))
		return subject, body
	default:
		if name == "" {
			name = "Cher parent"
		}
		subject := fmt.Sprintf("Formulaire de consentement %s : %s", input.FormID, statusLabelFR(status))
		body := fmt.Sprintf("Bonjour %s,\n\nVotre formulaire de consentement %s (%s) est maintenant : %s.\n\nL'équipe Les Petits Moulins",
			name, input.FormID, input.FormType, statusLabelFR(status))
		return subject, body
	}
}

func statusLabelFR(status string) string {
	switch status {
	case constants.FormStatusSubmitted:
		return "soumis"
	case constants.FormStatusReviewed:
		return "en cours de révision"
	case constants.FormStatusApproved:
		return "approuvé"
	case constants.FormStatusRejected:
		return "refusé"
	default:
		return status
	}
}

func statusLabelEN(status string) string {
	switch status {
	case constants.FormStatusSubmitted:
		return "submitted"
	case constants.FormStatusReviewed:
		return "under review"
	case constants.FormStatusApproved:
		return "approved"
	case constants.FormStatusRejected:
		return "rejected"
	default:
		return status
	}
}

func normalizeLocale(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if strings.HasPrefix(l, "en") {
		return localeEN
	}
	return localeFR
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
