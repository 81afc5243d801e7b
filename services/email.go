package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/smtp"
	"os"

	"github.com/alphabatem/common/context"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

// Notifier sends the account lifecycle emails.
type Notifier interface {
	SendWelcomeEmail(to, username, role string) error
	SendTeacherApprovedEmail(to, username string) error
	SendTeacherRejectedEmail(to, username, reason string) error
}

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"

	appName = "English Hub"
)

// EmailService delivers through SendGrid when SENDGRID_API_KEY is set and
// falls back to SMTP. With neither configured, mail is logged and skipped.
type EmailService struct {
	context.DefaultService

	sendgridKey  string
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	baseURL      string

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.sendgridKey = os.Getenv("SENDGRID_API_KEY")
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")
	svc.baseURL = os.Getenv("BASE_URL")

	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = appName
	}
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	if err := svc.loadTemplates(); err != nil {
		log.WithError(err).Error("Failed to load email templates")
		return err
	}
	return nil
}

const welcomeEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome to {{.AppName}}, {{.Username}}!</h2>
  {{if eq .Role "teacher"}}
  <p>Your teacher account is waiting for approval. We will email you as soon as an administrator reviews it.</p>
  {{else}}
  <p>Your first lesson is waiting. Set a weekly goal and start building your streak.</p>
  {{end}}
  <p><a href="{{.BaseURL}}">Open {{.AppName}}</a></p>
</body>
</html>`

const teacherApprovedEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hi {{.Username}},</h2>
  <p>Your teacher account on {{.AppName}} has been approved. You can now create courses and lessons and invite your students.</p>
  <p><a href="{{.BaseURL}}">Go to your dashboard</a></p>
</body>
</html>`

const teacherRejectedEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hi {{.Username}},</h2>
  <p>Your teacher application on {{.AppName}} was not approved.</p>
  <p><strong>Reason:</strong> {{.Reason}}</p>
  <p>You can keep learning with your student account.</p>
</body>
</html>`

type accountEmailData struct {
	AppName  string
	BaseURL  string
	Username string
	Role     string
	Reason   string
}

func (svc *EmailService) loadTemplates() error {
	svc.templates = make(map[string]*template.Template)

	sources := map[string]string{
		"welcome":          welcomeEmailHTML,
		"teacher_approved": teacherApprovedEmailHTML,
		"teacher_rejected": teacherRejectedEmailHTML,
	}
	for name, src := range sources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return fmt.Errorf("failed to parse %s email template: %w", name, err)
		}
		svc.templates[name] = tmpl
	}
	return nil
}

func (svc *EmailService) SendWelcomeEmail(to, username, role string) error {
	return svc.sendTemplateEmail(to, "Welcome to "+appName, "welcome", accountEmailData{
		AppName:  appName,
		BaseURL:  svc.baseURL,
		Username: username,
		Role:     role,
	})
}

func (svc *EmailService) SendTeacherApprovedEmail(to, username string) error {
	return svc.sendTemplateEmail(to, "Your teacher account is approved", "teacher_approved", accountEmailData{
		AppName:  appName,
		BaseURL:  svc.baseURL,
		Username: username,
	})
}

func (svc *EmailService) SendTeacherRejectedEmail(to, username, reason string) error {
	return svc.sendTemplateEmail(to, "Your teacher application", "teacher_rejected", accountEmailData{
		AppName:  appName,
		BaseURL:  svc.baseURL,
		Username: username,
		Reason:   reason,
	})
}

func (svc *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	switch {
	case svc.sendgridKey != "":
		return svc.sendWithSendgrid(to, subject, body.String())
	case svc.smtpHost != "":
		return svc.sendWithSMTP(to, subject, body.String())
	default:
		log.WithFields(log.Fields{"to": to, "subject": subject}).Warn("No mail transport configured, skipping email")
		return nil
	}
}

func (svc *EmailService) sendWithSendgrid(to, subject, body string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(svc.fromName, svc.fromEmail))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", body))

	req := sendgrid.GetRequest(svc.sendgridKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		log.WithFields(log.Fields{"to": to, "status": res.StatusCode, "body": res.Body}).Error("SendGrid rejected email")
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent")
	return nil
}

func (svc *EmailService) sendWithSMTP(to, subject, body string) error {
	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.fromName, svc.fromEmail, to, subject, body))

	err := smtp.SendMail(svc.smtpHost+":"+svc.smtpPort, auth, svc.fromEmail, []string{to}, msg)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent")
	return nil
}
