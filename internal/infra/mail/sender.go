package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/gomail.v2"
)

// subjectMarkerRe matches the optional <!-- SUBJECT: ... --> header at the top
// of a template file.
var subjectMarkerRe = regexp.MustCompile(`(?s)\A\s*<!--\s*SUBJECT:\s*(.*?)\s*-->\s*`)

type EmailSender struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	TemplatesDir string
}

func NewEmailSender(host string, port int, user, password, from, templatesDir string) *EmailSender {
	return &EmailSender{
		Host:         host,
		Port:         port,
		User:         user,
		Password:     password,
		From:         from,
		TemplatesDir: templatesDir,
	}
}

// Send loads templateName.html, renders it with vars and delivers it via SMTP.
// The subject comes from an explicit "subject" variable, else from the
// template's SUBJECT marker (itself rendered), else a generic fallback.
func (s *EmailSender) Send(to, templateName string, vars map[string]any) error {
	raw, err := os.ReadFile(filepath.Join(s.TemplatesDir, templateName+".html"))
	if err != nil {
		return fmt.Errorf("load email template %q: %w", templateName, err)
	}

	body := string(raw)
	subject := ""
	if m := subjectMarkerRe.FindStringSubmatch(body); m != nil {
		subject = Render(m[1], vars)
		body = subjectMarkerRe.ReplaceAllString(body, "")
	}
	if explicit, ok := vars["subject"].(string); ok && explicit != "" {
		subject = explicit
	}
	if strings.TrimSpace(subject) == "" {
		subject = "Update from your career concierge"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", Render(body, vars))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email via SMTP: %w", err)
	}
	return nil
}
