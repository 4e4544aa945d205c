package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
)

const (
	OTP_LENGTH      = 6
	OTP_LOWER_BOUND = 100_000
	OTP_UPPER_BOUND = 1_000_000
)

const (
	BookingDeadlineName      = "booking-deadline"
	VerificationDeadlineName = "email-verification-deadline"
)

const (
	SlotGeneratorLeaderLockKey  = "slotgen:leader"
	DeadlineSetRedisKey         = "deadline:pending"
	DeadlineEntryRedisKeyPrefix = "deadline:entry:"
)

const (
	AppDefaultQueryWeeks = 2
)
