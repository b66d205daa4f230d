// Package mail abstracts outbound email behind a one-method interface so
// the verification flow never touches SMTP directly.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// ErrDeliveryFailed wraps any transport-level send failure.
var ErrDeliveryFailed = errors.New("mail delivery failed")

// Sender delivers a single plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

const verificationSubject = "[DriveHub] Email verification code"

// VerificationMessage builds the subject and body for a verification
// code email.
func VerificationMessage(code string) (subject, body string) {
	body = fmt.Sprintf(
		"Hello,\n\n"+
			"Your DriveHub sign-up verification code is:\n\n"+
			"    %s\n\n"+
			"The code is valid for 3 minutes.\n"+
			"If you did not request this code, you can safely ignore this email.\n",
		code,
	)
	return verificationSubject, body
}
