package exceptions

import (
	"fmt"

	"clinic-booking-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseDate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseDate)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, CodeUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevInvalidAPIKey)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, CodeTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrFingerprintRequired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientFingerprintRequired, constvars.ErrDevValidationFailed)
	}
	ErrURLParamMissing = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamMissing, paramName))
	}
	ErrQueryParamMissing = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevQueryParamMissing, paramName))
	}

	// Slot aggregate
	ErrSlotUnavailable = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, CodeSlotUnavailable, constvars.ErrClientSlotUnavailable, constvars.ErrDevSlotUnavailable)
	}
	ErrSlotLockConflict = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, CodeSlotLockConflict, constvars.ErrClientSlotLockConflict, constvars.ErrDevSlotLockConflict)
	}
	ErrSlotNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, CodeNotFound, constvars.ErrClientSlotNotFound, constvars.ErrDevSlotNotFound)
	}
	ErrLockedSlotNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, CodeLockedSlotNotFound, constvars.ErrClientLockedSlotNotFound, constvars.ErrDevLockedSlotNotFound)
	}
	ErrInvariantViolation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInvariantViolation, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevInvariantViolation)
	}
	ErrMaxQuantityNotPositive = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevMaxQuantityNotPositive)
	}
	ErrMaxQuantityBelowLocked = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevMaxQuantityBelowLocked)
	}
	ErrInvalidShift = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, CodeValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevInvalidShift)
	}

	// Booking / verification
	ErrBookingNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, CodeNotFound, constvars.ErrClientBookingNotFound, constvars.ErrDevBookingNotFound)
	}
	ErrSagaTimeout = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, CodeTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevSagaTimeout)
	}
	ErrVerificationTerminal = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGone, CodeValidation, constvars.ErrClientVerificationExpired, constvars.ErrDevVerificationTerminal)
	}
	ErrOTPGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevOTPGenerateFailed)
	}

	// Bus / deadline infrastructure
	ErrBusNoHandler = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBusNoHandler)
	}
	ErrBusPublish = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBusPublishFailed)
	}
	ErrDeadlineSchedule = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDeadlineScheduleFailed)
	}
	ErrDeadlineCancel = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDeadlineCancelFailed)
	}

	// Postgres
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToSet)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToGet)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, CodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToDelete)
	}
)
