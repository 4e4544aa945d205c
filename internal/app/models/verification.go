package models

import "time"

// Verification saga states.
const (
	VerificationStatePendingReply = "PENDING_REPLY"
	VerificationStateVerified     = "VERIFIED"
	VerificationStateCodeMismatch = "CODE_MISMATCH"
	VerificationStateTimeout      = "TIMEOUT"
)

func VerificationStateTerminal(state string) bool {
	return state != VerificationStatePendingReply
}

// VerificationChallenge is one row of the verification correlation table.
// A challenge accepts exactly one reply.
type VerificationChallenge struct {
	VerificationID string
	Email          string
	Code           string
	DeadlineHandle string
	State          string
	UpdatedAt      time.Time
}
