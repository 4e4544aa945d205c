package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strconv"

	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
)

// generateOTP draws a 6-digit code from crypto/rand. The lower bound keeps
// a leading zero from shortening the code.
func generateOTP() (string, error) {
	span := big.NewInt(constvars.OTP_UPPER_BOUND - constvars.OTP_LOWER_BOUND)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", exceptions.ErrOTPGenerate(err)
	}
	return strconv.FormatInt(n.Int64()+constvars.OTP_LOWER_BOUND, 10), nil
}

// codesMatch compares in constant time.
func codesMatch(expected, provided string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
