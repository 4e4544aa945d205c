package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"

	LoggingSlotIDKey         = "slot_id"
	LoggingBookingIDKey      = "booking_id"
	LoggingFingerprintKey    = "fingerprint"
	LoggingVerificationIDKey = "verification_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingSagaStateKey      = "saga_state"
	LoggingMessageNameKey    = "message_name"
	LoggingMessageKeyKey     = "message_key"
	LoggingDeadlineNameKey   = "deadline_name"
	LoggingDeadlineHandleKey = "deadline_handle"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
)
