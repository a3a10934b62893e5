package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends notification emails over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

// SendReviewReceivedEmail notifies a hostel owner that a student left a review.
func (m *Mailer) SendReviewReceivedEmail(toEmail, hostelName string, rating int32) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Review Received")
	msg.SetBody("text/plain", fmt.Sprintf("Your hostel '%s' received a new %d-star review.", hostelName, rating))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
