package services

import "log"

// Mailer delivers verification and password-reset codes. Actual delivery is
// an external collaborator; the core only hands codes across this boundary.
type Mailer interface {
	SendVerificationCode(email, code string) error
	SendPasswordResetCode(email, code string) error
}

// LogMailer writes codes to the process log. Used in development and as the
// fallback when no delivery provider is configured.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(email, code string) error {
	log.Printf("[Mail] verification code for %s: %s", email, code)
	return nil
}

func (LogMailer) SendPasswordResetCode(email, code string) error {
	log.Printf("[Mail] password reset code for %s: %s", email, code)
	return nil
}
