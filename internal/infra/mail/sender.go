package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from, trackingBaseURL string) *EmailSender {
	return &EmailSender{
		Host:            host,
		Port:            port,
		User:            user,
		Password:        password,
		From:            from,
		TrackingBaseURL: trackingBaseURL,
	}
}

// SendRecovery renders the named recovery template, injects the open
// tracking pixel and hands the message to SMTP. The send is all or
// nothing: a transport error means no email went out.
func (s *EmailSender) SendRecovery(to, templateName string, data RecoveryData) error {
	tmpl, ok := recoveryTemplates[templateName]
	if !ok {
		return fmt.Errorf("unknown recovery template %q", templateName)
	}

	body, err := renderFile(tmpl.file, data)
	if err != nil {
		return err
	}
	body = InjectTrackingPixel(body, s.pixelURL(data.TrackingID))

	return s.send(to, tmpl.subject, body)
}

func (s *EmailSender) SendBookingConfirmation(to string, data ConfirmationData) error {
	body, err := renderFile(confirmationTemplate, data)
	if err != nil {
		return err
	}
	return s.send(to, "Your FreshBins booking is confirmed", body)
}

func (s *EmailSender) pixelURL(trackingID string) string {
	return fmt.Sprintf("%s/track-email-open?id=%s", s.TrackingBaseURL, trackingID)
}

func (s *EmailSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	return nil
}
