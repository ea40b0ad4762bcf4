package mailer

import (
	"fmt"

	"github.com/musa-q/MyArabicLearner/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers login tokens out-of-band.
type Sender interface {
	SendLoginToken(email, token string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password)
	d.SSL = cfg.Port == 465
	return &SMTPSender{dialer: d, from: cfg.From}
}

func (s *SMTPSender) SendLoginToken(email, token string) error {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: sans-serif;">
			<h2 style="text-align: center; color: #2E86C1;">Welcome to My Arabic Learner!</h2>
			<p style="text-align: center;">
				To verify your email address, please use the following code:<br>
				<h3 style="color: #2E86C1; font-weight: bold; text-align: center;">%s</h3>
			</p>
			<p style="text-align: center;">
				If you did not sign up for this account, you can ignore this email.
			</p>
			<br>
			<p style="text-align: center;">
				Best regards,<br>
				The My Arabic Learner Team
			</p>
		</body>
	</html>`, token)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify Your Email - My Arabic Learner")
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
