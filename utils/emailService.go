package utils

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"tourlms/config"
	"tourlms/models"

	"golang.org/x/sync/errgroup"
)

// HTML wrapper shared by every outgoing email
func getEmailTemplate(title string, bodyContent string) string {
	appName := "African Intelligence"
	if config.AppConfig != nil && config.AppConfig.AppName != "" {
		appName = config.AppConfig.AppName
	}

	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #B91C1C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.info-box { background: #FEF2F2; padding: 15px; border-radius: 4px; border-left: 4px solid #B91C1C; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">&copy; %d %s. All rights reserved.</div>
		</div>
	</body>
	</html>
	`, strings.ToUpper(appName), title, bodyContent, time.Now().Year(), appName)
}

// multiline escapes user text and keeps its line breaks
func multiline(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// ContactAdminEmail notifies the admin mailbox of a new submission
func ContactAdminEmail(adminEmail string, msg models.ContactMessage) EmailMessage {
	body := fmt.Sprintf(`
		<p><strong>From:</strong> %s (%s)</p>
		<p><strong>Subject:</strong> %s</p>
		<p><strong>Message:</strong></p>
		<div class="info-box">%s</div>
		<p><small>Submitted at: %s</small></p>
	`, html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Subject),
		multiline(msg.Message), msg.CreatedAt.Format(time.RFC1123))

	return EmailMessage{
		To:      []string{adminEmail},
		Subject: "New Contact Form Submission: " + msg.Subject,
		HTML:    getEmailTemplate("New Contact Form Submission", body),
	}
}

// ContactConfirmationEmail thanks the sender
func ContactConfirmationEmail(msg models.ContactMessage) EmailMessage {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your message and will get back to you as soon as possible.</p>
		<p><strong>Your message:</strong></p>
		<div class="info-box">%s</div>
	`, html.EscapeString(msg.Name), multiline(msg.Message))

	return EmailMessage{
		To:      []string{msg.Email},
		Subject: "Thank you for contacting us",
		HTML:    getEmailTemplate("Thank you for reaching out!", body),
	}
}

// SendContactEmails sends the admin notification and the sender confirmation
// concurrently. Both sends run to completion and the first failure is returned.
func SendContactEmails(ctx context.Context, mailer Mailer, adminEmail string, msg models.ContactMessage) error {
	var g errgroup.Group
	g.Go(func() error { return mailer.Send(ctx, ContactAdminEmail(adminEmail, msg)) })
	g.Go(func() error { return mailer.Send(ctx, ContactConfirmationEmail(msg)) })
	return g.Wait()
}

// EnrollmentEmail confirms a course enrollment
func EnrollmentEmail(email, userName, courseName string) EmailMessage {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have successfully enrolled in <strong>%s</strong>.</p>
		<p>You can now access all the course content. Complete every module to earn your certificate.</p>
	`, html.EscapeString(userName), html.EscapeString(courseName))

	return EmailMessage{
		To:      []string{email},
		Subject: "Course Enrollment Confirmation: " + courseName,
		HTML:    getEmailTemplate("Enrollment Successful!", body),
	}
}

// CertificateEmail announces an issued certificate
func CertificateEmail(email, userName, courseName, certificateNumber string) EmailMessage {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>.</p>
		<div class="info-box">Your certificate number: <strong>%s</strong></div>
	`, html.EscapeString(userName), html.EscapeString(courseName), certificateNumber)

	return EmailMessage{
		To:      []string{email},
		Subject: "Course Completion Certificate: " + courseName,
		HTML:    getEmailTemplate("Certificate of Completion", body),
	}
}

// ContactDigestEmail lists unread contact messages for the admin
func ContactDigestEmail(adminEmail string, messages []models.ContactMessage) EmailMessage {
	var rows strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&rows, "<li><strong>%s</strong> from %s (%s), %s</li>",
			html.EscapeString(m.Subject), html.EscapeString(m.Name), html.EscapeString(m.Email),
			m.CreatedAt.Format("Jan 2, 2006"))
	}

	body := fmt.Sprintf(`
		<p>You have <strong>%d</strong> unread contact message(s).</p>
		<ul>%s</ul>
	`, len(messages), rows.String())

	return EmailMessage{
		To:      []string{adminEmail},
		Subject: fmt.Sprintf("%d unread contact message(s)", len(messages)),
		HTML:    getEmailTemplate("Unread Contact Messages", body),
	}
}

// SendAsync sends in the background and only logs failures
func SendAsync(msg EmailMessage) {
	mailer := Mail
	go func() {
		if err := mailer.Send(context.Background(), msg); err != nil {
			Log.Warn().Err(err).Str("subject", msg.Subject).Msg("failed to send email")
		}
	}()
}
