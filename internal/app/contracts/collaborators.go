package contracts

import (
	"context"

	"clinic-booking-service/internal/pkg/messages"
)

// The patient, appointment, and notification services are external
// collaborators. The sagas talk to them only through these clients; the
// production implementations forward the command to a broker queue and the
// reply events flow back through the event bus.

type PatientCommandClient interface {
	CreatePatient(ctx context.Context, command messages.CreatePatientCommand) error
	DeletePatient(ctx context.Context, command messages.DeletePatientCommand) error
}

type AppointmentCommandClient interface {
	CreateAppointment(ctx context.Context, command messages.CreateAppointmentCommand) error
	UpdateAppointmentState(ctx context.Context, command messages.UpdateAppointmentStateCommand) error
}

type NotificationCommandClient interface {
	SendOTPVerification(ctx context.Context, command messages.SendOTPVerificationCommand) error
}
