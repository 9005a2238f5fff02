package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends catalog notification emails over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

// SendListingVerifiedEmail notifies the recipient that a listing passed
// verification and is now live.
func (m *Mailer) SendListingVerifiedEmail(toEmail, listingTitle string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Listing Verified")
	msg.SetBody("text/plain", fmt.Sprintf("Your listing %q has been verified and is now active.", listingTitle))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
