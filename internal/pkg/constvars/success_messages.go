package constvars

const (
	CreateBookingSuccessMessage    = "Booking accepted, poll the status endpoint for the outcome"
	GetBookingStatusSuccessMessage = "Successfully retrieved booking status"
	CreateSlotSuccessMessage       = "Successfully created slot"
	UpdateSlotSuccessMessage       = "Successfully updated slot"
	GetSlotsSuccessMessage         = "Successfully retrieved slots"
	VerificationReplyAcceptedMsg   = "Verification reply received"

	BookingInProgressMessage = "Booking in progress"
	BookingCompletedMessage  = "Booking completed successfully"
)
