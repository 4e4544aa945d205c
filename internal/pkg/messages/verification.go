package messages

const (
	CommandVerifyEmail         = "verification.verify_email"
	CommandSendOTPVerification = "notification.send_otp_verification"
)

const (
	EventEmailVerificationStarted = "verification.started"
	EventEmailVerificationReplied = "verification.patient_replied"
	EventEmailVerified            = "verification.verified"
	EventEmailVerificationFailed  = "verification.failed"
)

// Failure reasons carried as data, not control flow.
const (
	VerificationFailureMismatch = "CODE_MISMATCH"
	VerificationFailureTimeout  = "TIMEOUT"
)

type VerifyEmailCommand struct {
	VerificationID string `json:"verification_id"`
	Email          string `json:"email"`
}

// SendOTPVerificationCommand is delegated to the notification collaborator.
type SendOTPVerificationCommand struct {
	VerificationID   string `json:"verification_id"`
	To               string `json:"to"`
	VerificationCode string `json:"verification_code"`
	CallbackURL      string `json:"callback_url"`
}

type EmailVerificationStartedEvent struct {
	VerificationID string `json:"verification_id"`
	Email          string `json:"email"`
	Code           string `json:"code"`
}

type EmailVerificationRepliedEvent struct {
	VerificationID   string `json:"verification_id"`
	VerificationCode string `json:"verification_code"`
}

type EmailVerifiedEvent struct {
	VerificationID string `json:"verification_id"`
	Email          string `json:"email"`
}

type EmailVerificationFailedEvent struct {
	VerificationID string `json:"verification_id"`
	Email          string `json:"email"`
	Reason         string `json:"reason"`
}
