package constvars

// Client-facing messages. These are the only error strings a caller sees.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again later"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"

	ErrClientSlotUnavailable     = "The selected slot is fully booked, please pick another slot"
	ErrClientSlotLockConflict    = "Another booking attempt is already in progress for this device"
	ErrClientSlotNotFound        = "The selected slot does not exist"
	ErrClientLockedSlotNotFound  = "No active reservation found to release"
	ErrClientBookingNotFound     = "Booking not found"
	ErrClientFingerprintRequired = "Fingerprint header is required"
	ErrClientVerificationExpired = "The verification challenge has expired or was already answered"
)

// Developer messages, logged but never returned to clients.
const (
	ErrDevValidationFailed         = "validation failed for request payload"
	ErrDevCannotParseJSON          = "failed to parse JSON request body"
	ErrDevCannotParseDate          = "failed to parse date parameter"
	ErrDevServerDeadlineExceeded   = "context deadline exceeded while processing request"
	ErrDevMissingRequestID         = "request ID not found in request context"
	ErrDevInvalidAPIKey            = "API key missing or does not match configured key"
	ErrDevSlotUnavailable          = "slot has no remaining capacity"
	ErrDevSlotLockConflict         = "fingerprint already holds a lock for a different booking"
	ErrDevSlotNotFound             = "slot aggregate has no events"
	ErrDevLockedSlotNotFound       = "no locked slot matches the given fingerprint"
	ErrDevInvariantViolation       = "slot capacity invariant violated"
	ErrDevMaxQuantityNotPositive   = "maxQuantity must be greater than zero"
	ErrDevMaxQuantityBelowLocked   = "maxQuantity cannot be lower than currently locked count"
	ErrDevBookingNotFound          = "no booking status row for the given booking ID"
	ErrDevSagaTimeout              = "saga deadline elapsed before completion"
	ErrDevVerificationTerminal     = "verification challenge already reached a terminal state"
	ErrDevDBFailedToFindData       = "failed to find data in postgres database"
	ErrDevDBFailedToInsertData     = "failed to insert data into postgres database"
	ErrDevDBFailedToUpdateData     = "failed to update data in postgres database"
	ErrDevRedisFailedToSet         = "failed to set value in redis"
	ErrDevRedisFailedToGet         = "failed to get value from redis"
	ErrDevRedisFailedToDelete      = "failed to delete value from redis"
	ErrDevBusNoHandler             = "no command handler registered for message name"
	ErrDevBusPublishFailed         = "failed to publish message to broker"
	ErrDevCannotMarshalJSON        = "failed to marshal value to JSON"
	ErrDevDeadlineScheduleFailed   = "failed to persist deadline entry"
	ErrDevDeadlineCancelFailed     = "failed to remove deadline entry"
	ErrDevOTPGenerateFailed        = "failed to generate one-time code"
	ErrDevInvalidShift             = "shift must be morning or afternoon"
	ErrDevURLParamMissing          = "required URL parameter %s is missing"
	ErrDevQueryParamMissing        = "required query parameter %s is missing"
)
