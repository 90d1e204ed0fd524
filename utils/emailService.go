package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEnrollmentEmail notifies a student that an admin enrolled them in a
// course. Called on a goroutine off the request path; failures only log.
func SendEnrollmentEmail(toEmail, toName, courseTitle string) {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Printf("Skipping enrollment email to %s (no Sendgrid key configured)", toEmail)
		return
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("You have been enrolled in %s", courseTitle)

	plain := fmt.Sprintf("Hi %s,\n\nYou have been enrolled in the course \"%s\". Log in to start learning.\n", toName, courseTitle)
	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2>Welcome to %s!</h2>
					<p>Hi %s,</p>
					<p>You have been enrolled in the course <strong>%s</strong>. Log in to start learning.</p>
				</div>
			</body>
		</html>`, courseTitle, toName, courseTitle)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending enrollment email to %s: %v", toEmail, err)
		return
	}
	if resp.StatusCode >= 300 {
		log.Printf("Enrollment email to %s rejected with status %d", toEmail, resp.StatusCode)
		return
	}

	log.Printf("Enrollment email sent to %s for course %q", toEmail, courseTitle)
}
