package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
	textTemplate "text/template"
	"time"

	config "eatwise/configs"
)

type IMailService interface {
	SendOTP(to, otp string, ttl time.Duration) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string
	Port     int // 587 (STARTTLS) or 465 (SMTPS)
	Username string
	Password string
	From     string
	FromName string
	AppName  string
}

func SMTPConfigFrom(cfg *config.Config) SMTPConfig {
	return SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		AppName:  cfg.SMTPFromName,
	}
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *textTemplate.Template
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	if cfg.AppName == "" {
		cfg.AppName = "EatWise"
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("otpHTML").Parse(otpHTMLTemplate)),
		textTpl: textTemplate.Must(textTemplate.New("otpText").Parse(otpTextTemplate)),
	}
}

type EmailData struct {
	Title   string
	Intro   string
	Code    string
	Minutes int
	AppName string
	Year    int
}

func (s *smtpMailService) SendOTP(to, otp string, ttl time.Duration) error {
	subject := "Your password reset code"
	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   "Use the code below to reset your password. If you didn't request this, you can safely ignore this email.",
		Code:    otp,
		Minutes: int(ttl.Minutes()),
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

const otpHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:32px 16px;background:#f1f5f4;font-family:-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif;color:#1f2937">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:12px;overflow:hidden">
    <div style="padding:24px 28px;background:#16a34a;color:#ffffff;font-weight:700;font-size:20px">{{.AppName}}</div>
    <div style="padding:32px 28px">
      <h1 style="margin:0 0 16px;font-size:22px">{{.Title}}</h1>
      <p style="line-height:1.6">{{.Intro}}</p>
      <p style="font-size:32px;font-weight:700;letter-spacing:8px;text-align:center;margin:28px 0">{{.Code}}</p>
      <p style="color:#6b7280;font-size:13px">The code expires in {{.Minutes}} minutes.</p>
    </div>
    <div style="padding:16px 28px;color:#9ca3af;font-size:12px;text-align:center">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const otpTextTemplate = `{{.Title}}

{{.Intro}}

Code: {{.Code}}
The code expires in {{.Minutes}} minutes.

{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.Port != 465 {
		// smtp.SendMail upgrades with STARTTLS when the server offers it
		return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
	}

	// SMTPS (implicit TLS)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
}
