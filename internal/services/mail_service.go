package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"flowstate/internal/config"
	"flowstate/internal/logging"
)

type IMailService interface {
	SendMailToNotifyUser(ctx context.Context, to, subject, body, ctaText, ctaURL string) error
	SendMailToResetPassword(ctx context.Context, to, token string) error
}

type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:32px 16px;background:#0f172a;color:#f8fafc;font-family:-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif">
  <div style="max-width:560px;margin:0 auto;background:#1e293b;border-radius:12px;padding:32px">
    <h1 style="font-size:20px;margin:0 0 16px">{{.Title}}</h1>
    <p style="line-height:1.6;color:#cbd5e1">{{.Intro}}</p>
    {{if .ButtonURL}}<p style="margin:28px 0"><a href="{{.ButtonURL}}" style="background:#6366f1;color:#fff;padding:12px 20px;border-radius:8px;text-decoration:none">{{.ButtonTxt}}</a></p>{{end}}
    <p style="font-size:12px;color:#64748b">{{.AppName}} &copy; {{.Year}}</p>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
- {{.AppName}} (c) {{.Year}}
`

type mailRenderer struct {
	cfg     config.MailConfig
	htmlTpl *template.Template
	textTpl *texttemplate.Template
	now     func() time.Time
}

func newMailRenderer(cfg config.MailConfig) mailRenderer {
	return mailRenderer{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
		now:     time.Now,
	}
}

func (r mailRenderer) render(data EmailData) (html string, text string, err error) {
	data.AppName = r.cfg.AppName
	data.Year = r.now().Year()

	var hb, tb bytes.Buffer
	if err = r.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = r.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (r mailRenderer) resetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(r.cfg.AppBaseURL, "/"), url.QueryEscape(token))
}

func resetEmail(link string) (string, EmailData) {
	subject := "Reset your password"
	return subject, EmailData{
		Title:     subject,
		Intro:     "We received a request to reset your password. The link below is valid for one hour. If you did not request this, you can ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
	}
}

// NewMailService sends through SMTP when a host is configured and only logs
// otherwise.
func NewMailService(cfg config.MailConfig) IMailService {
	if cfg.Host == "" {
		return &logMailService{r: newMailRenderer(cfg)}
	}
	return &smtpMailService{r: newMailRenderer(cfg), cfg: cfg}
}

type smtpMailService struct {
	r   mailRenderer
	cfg config.MailConfig
}

func (s *smtpMailService) SendMailToNotifyUser(ctx context.Context, to, subject, body, ctaText, ctaURL string) error {
	html, text, err := s.r.render(EmailData{Title: subject, Intro: body, ButtonURL: ctaURL, ButtonTxt: ctaText})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subject, html, text)
}

func (s *smtpMailService) SendMailToResetPassword(ctx context.Context, to, token string) error {
	subject, data := resetEmail(s.r.resetLink(token))
	html, text, err := s.r.render(data)
	if err != nil {
		return err
	}
	return s.send(ctx, to, subject, html, text)
}

func (s *smtpMailService) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	msg := buildMessage(formatFromHeader(s.cfg), to, subject, htmlBody, textBody, s.r.now())

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
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

// buildMessage renders a multipart/alternative message with a text and an
// HTML part.
func buildMessage(from, to, subject, htmlBody, textBody string, now time.Time) []byte {
	boundary := fmt.Sprintf("alt_%d", now.UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func formatFromHeader(cfg config.MailConfig) string {
	name := strings.TrimSpace(cfg.FromName)
	if name == "" {
		return cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("UTF-8", name), cfg.From)
}

// logMailService is used when no SMTP host is configured.
type logMailService struct {
	r mailRenderer
}

func (l *logMailService) SendMailToNotifyUser(ctx context.Context, to, subject, body, ctaText, ctaURL string) error {
	logging.Ctx(ctx).Info().
		Str("to", to).
		Str("subject", subject).
		Str("cta_url", ctaURL).
		Msg("mail not sent: no smtp host configured")
	return nil
}

func (l *logMailService) SendMailToResetPassword(ctx context.Context, to, token string) error {
	subject, data := resetEmail(l.r.resetLink(token))
	logging.Ctx(ctx).Info().
		Str("to", to).
		Str("subject", subject).
		Str("link", data.ButtonURL).
		Msg("mail not sent: no smtp host configured")
	return nil
}
