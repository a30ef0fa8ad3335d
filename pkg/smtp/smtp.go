package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendReportNotification(departmentEmail string, ticket string, description string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	host string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{auth: auth, mail: mail, host: host, addr: host + ":587"}
}

func (s *smtp) SendReportNotification(departmentEmail string, ticket string, description string) error {
	to := []string{departmentEmail}

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Nowe zgłoszenie %s\r\n\r\nNumer zgłoszenia: %s\r\nTreść zgłoszenia: %s\r\n",
		departmentEmail, ticket, ticket, description))

	if err := smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
