package mailer

type Service interface {
	SendWelcome(toEmail, toName string) error
}
