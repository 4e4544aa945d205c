package collaborators

import (
	"context"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

// QueueClients forwards collaborator commands to the broker queues the
// patient, appointment, and notification services consume. Replies come back
// as events on the inbound queue.
type QueueClients struct {
	publisher contracts.QueuePublisher
	queues    config.Queues
	log       *zap.Logger
}

func NewQueueClients(publisher contracts.QueuePublisher, queues config.Queues, logger *zap.Logger) *QueueClients {
	return &QueueClients{
		publisher: publisher,
		queues:    queues,
		log:       logger,
	}
}

func (c *QueueClients) CreatePatient(ctx context.Context, command messages.CreatePatientCommand) error {
	c.log.Info("CollaboratorClients.CreatePatient called",
		zap.String(constvars.LoggingPatientIDKey, command.PatientID),
	)
	envelope, err := messages.NewEnvelope(messages.CommandCreatePatient, command.PatientID, command)
	if err != nil {
		return err
	}
	return c.publisher.PublishToQueue(ctx, c.queues.PatientCommandQueue, envelope)
}

func (c *QueueClients) DeletePatient(ctx context.Context, command messages.DeletePatientCommand) error {
	c.log.Info("CollaboratorClients.DeletePatient called",
		zap.String(constvars.LoggingPatientIDKey, command.PatientID),
	)
	envelope, err := messages.NewEnvelope(messages.CommandDeletePatient, command.PatientID, command)
	if err != nil {
		return err
	}
	return c.publisher.PublishToQueue(ctx, c.queues.PatientCommandQueue, envelope)
}

func (c *QueueClients) CreateAppointment(ctx context.Context, command messages.CreateAppointmentCommand) error {
	c.log.Info("CollaboratorClients.CreateAppointment called",
		zap.String(constvars.LoggingAppointmentIDKey, command.AppointmentID),
	)
	envelope, err := messages.NewEnvelope(messages.CommandCreateAppointment, command.AppointmentID, command)
	if err != nil {
		return err
	}
	return c.publisher.PublishToQueue(ctx, c.queues.AppointmentCommandQueue, envelope)
}

func (c *QueueClients) UpdateAppointmentState(ctx context.Context, command messages.UpdateAppointmentStateCommand) error {
	c.log.Info("CollaboratorClients.UpdateAppointmentState called",
		zap.String(constvars.LoggingAppointmentIDKey, command.AppointmentID),
		zap.String("state", command.State),
	)
	envelope, err := messages.NewEnvelope(messages.CommandUpdateAppointmentState, command.AppointmentID, command)
	if err != nil {
		return err
	}
	return c.publisher.PublishToQueue(ctx, c.queues.AppointmentCommandQueue, envelope)
}

func (c *QueueClients) SendOTPVerification(ctx context.Context, command messages.SendOTPVerificationCommand) error {
	c.log.Info("CollaboratorClients.SendOTPVerification called",
		zap.String(constvars.LoggingVerificationIDKey, command.VerificationID),
	)
	envelope, err := messages.NewEnvelope(messages.CommandSendOTPVerification, command.VerificationID, command)
	if err != nil {
		return err
	}
	return c.publisher.PublishToQueue(ctx, c.queues.NotificationCommandQueue, envelope)
}
