package utils

import (
	"net/smtp"
	"os"
)

// SendMail is fire-and-forget: delivery failures are logged, never surfaced
// to the request that triggered them.
func SendMail(email string, message []byte) {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")

	if from == "" || smtpHost == "" {
		LogInfo("SMTP not configured, skipping mail to " + email)
		return
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	auth := smtp.PlainAuth("", from, password, smtpHost)
	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{email}, message); err != nil {
		LogError(err, "Error sending mail")
		return
	}

	LogSuccess("Mail sent to " + email)
}
