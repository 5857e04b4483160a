// Package notification emails a confirmation to non-anonymous reporters
// after their report is stored. It reacts to ReportSubmitted events and has
// no HTTP surface.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"time"

	"outage_portal_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers one confirmation email.
type Sender interface {
	SendReportConfirmation(ctx context.Context, toEmail string, data ConfirmationData) error
}

// ConfirmationData fills the confirmation template.
type ConfirmationData struct {
	ReportID  string
	IssueType string
	Locality  string
}

const subjectConfirmation = "Your outage report was received"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<html>
<body>
  <h2>Thanks for your report</h2>
  <p>We received your {{.IssueType}} report for {{.Locality}}.</p>
  <p>Reference: <strong>{{.ReportID}}</strong></p>
  <p>You can use this reference to follow up on the status of the outage.</p>
</body>
</html>`))

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a sender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// SendReportConfirmation renders and delivers the confirmation email.
func (s *SMTPSender) SendReportConfirmation(ctx context.Context, toEmail string, data ConfirmationData) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subjectConfirmation)
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
