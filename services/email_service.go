// File: /services/email_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"yatube-api/config"
	"yatube-api/logs"
	"yatube-api/models"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService tells authors about new followers.
type EmailService struct {
	config *config.Config
	dialer mailDialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

var followerHTML = template.Must(template.New("follower").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New follower</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello {{.Author}}!</h2>
    <p><strong>{{.Follower}}</strong> (@{{.Username}}) started following you on Yatube.</p>
    <p>Their feed will now include everything you publish.</p>
    <p style="color: #666; font-size: 14px;">This is an automated email, please do not reply.</p>
</body>
</html>`))

// renderFollowerHTML fills the HTML part. Names are user input and get escaped.
func renderFollowerHTML(author, follower models.User) (string, error) {
	var buf bytes.Buffer
	err := followerHTML.Execute(&buf, map[string]string{
		"Author":   author.FullName(),
		"Follower": follower.FullName(),
		"Username": follower.Username,
	})
	if err != nil {
		return "", fmt.Errorf("render follower email: %w", err)
	}
	return buf.String(), nil
}

func (es *EmailService) newFollowerMessage(author, follower models.User) (*gomail.Message, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", author.Email)
	m.SetHeader("Subject", fmt.Sprintf("Yatube - %s is now following you", follower.Username))

	textBody := fmt.Sprintf(`
Hello %s!

%s (@%s) started following you on Yatube.
Their feed will now include everything you publish.

The Yatube Team
This is an automated email, please do not reply.
`, author.FullName(), follower.FullName(), follower.Username)

	htmlBody, err := renderFollowerHTML(author, follower)
	if err != nil {
		return nil, err
	}

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	return m, nil
}

// NotifyNewFollower mails the author. Authors without an email address are
// skipped.
func (es *EmailService) NotifyNewFollower(ctx context.Context, author, follower models.User) error {
	if author.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := es.newFollowerMessage(author, follower)
	if err != nil {
		return err
	}
	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send follower email: %w", err)
	}

	logs.LogJSON("INFO", "Follower email sent", map[string]interface{}{
		"authorID":   author.ID,
		"followerID": follower.ID,
	})
	return nil
}
