package booking

import (
	"context"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/shared/metrics"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Saga drives a booking from a granted slot lock to a confirmed appointment.
// Progress is recorded in the correlation table before each collaborator
// call, so a redelivered reply finds the saga already advanced and is
// discarded. Any failure or the booking deadline compensates: the slot lock
// is released, a created patient is deleted, and the booking is rejected.
type Saga struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	store        contracts.BookingSagaStore
	commandBus   contracts.CommandBus
	eventBus     contracts.EventBus
	deadlines    contracts.DeadlineScheduler
	patients     contracts.PatientCommandClient
	appointments contracts.AppointmentCommandClient
	metrics      *metrics.Metrics
}

func NewSaga(
	logger *zap.Logger,
	cfg *config.InternalConfig,
	store contracts.BookingSagaStore,
	commandBus contracts.CommandBus,
	eventBus contracts.EventBus,
	deadlines contracts.DeadlineScheduler,
	patientClient contracts.PatientCommandClient,
	appointmentClient contracts.AppointmentCommandClient,
	m *metrics.Metrics,
) *Saga {
	return &Saga{
		log:          logger,
		cfg:          cfg,
		store:        store,
		commandBus:   commandBus,
		eventBus:     eventBus,
		deadlines:    deadlines,
		patients:     patientClient,
		appointments: appointmentClient,
		metrics:      m,
	}
}

// Subscribe attaches the saga to every event it correlates on.
func (s *Saga) Subscribe(eventBus contracts.EventBus) {
	eventBus.Subscribe(messages.EventSlotLocked, s.onSlotLocked)
	eventBus.Subscribe(messages.EventEmailVerified, s.onEmailVerified)
	eventBus.Subscribe(messages.EventEmailVerificationFailed, s.onEmailVerificationFailed)
	eventBus.Subscribe(messages.EventPatientCreated, s.onPatientCreated)
	eventBus.Subscribe(messages.EventPatientCreationFailed, s.onPatientCreationFailed)
	eventBus.Subscribe(messages.EventAppointmentCreated, s.onAppointmentCreated)
	eventBus.Subscribe(messages.EventAppointmentCreationFailed, s.onAppointmentCreationFailed)
	eventBus.Subscribe(constvars.BookingDeadlineName, s.onDeadline)
}

func (s *Saga) onSlotLocked(ctx context.Context, envelope messages.Envelope) error {
	var event messages.SlotLockedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	existing, err := s.store.FindByBookingID(ctx, event.BookingID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Redelivered lock event, the saga already started.
		return nil
	}

	timeout := time.Duration(s.cfg.Booking.TimeoutInSeconds) * time.Second
	handle, err := s.deadlines.Schedule(ctx, timeout, constvars.BookingDeadlineName, event.BookingID)
	if err != nil {
		return err
	}

	saga := &models.BookingSagaState{
		BookingID:      event.BookingID,
		SlotID:         event.SlotID,
		Fingerprint:    event.Fingerprint,
		Name:           event.Name,
		Email:          event.Email,
		Phone:          event.Phone,
		VerificationID: uuid.NewString(),
		DeadlineHandle: handle,
		State:          models.BookingStatePendingVerifyPatientPhone,
	}
	if err := s.transition(ctx, saga, models.BookingStatePendingVerifyPatientPhone); err != nil {
		return err
	}

	command := messages.VerifyEmailCommand{
		VerificationID: saga.VerificationID,
		Email:          saga.Email,
	}
	verifyEnvelope, err := messages.NewEnvelope(messages.CommandVerifyEmail, saga.VerificationID, command)
	if err != nil {
		return err
	}
	return s.commandBus.Send(ctx, verifyEnvelope)
}

func (s *Saga) onEmailVerified(ctx context.Context, envelope messages.Envelope) error {
	var event messages.EmailVerifiedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	saga, err := s.store.FindByVerificationID(ctx, event.VerificationID)
	if err != nil || saga == nil {
		return err
	}
	if s.discard(saga, models.BookingStatePendingVerifyPatientPhone, envelope.Name) {
		return nil
	}

	saga.PatientID = uuid.NewString()
	if err := s.transition(ctx, saga, models.BookingStatePendingCreatePatient); err != nil {
		return err
	}

	return s.patients.CreatePatient(ctx, messages.CreatePatientCommand{
		PatientID: saga.PatientID,
		Name:      saga.Name,
		Email:     saga.Email,
		Phone:     saga.Phone,
	})
}

func (s *Saga) onEmailVerificationFailed(ctx context.Context, envelope messages.Envelope) error {
	var event messages.EmailVerificationFailedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	saga, err := s.store.FindByVerificationID(ctx, event.VerificationID)
	if err != nil || saga == nil {
		return err
	}
	if models.BookingStateTerminal(saga.State) {
		return nil
	}

	finalState := models.BookingStateFailed
	if event.Reason == messages.VerificationFailureTimeout {
		finalState = models.BookingStateTimeout
	}
	return s.compensate(ctx, saga, finalState, event.Reason)
}

func (s *Saga) onPatientCreated(ctx context.Context, envelope messages.Envelope) error {
	var event messages.PatientCreatedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	saga, err := s.store.FindByPatientID(ctx, event.PatientID)
	if err != nil || saga == nil {
		return err
	}
	if s.discard(saga, models.BookingStatePendingCreatePatient, envelope.Name) {
		return nil
	}

	saga.AppointmentID = uuid.NewString()
	if err := s.transition(ctx, saga, models.BookingStatePendingCreateAppointment); err != nil {
		return err
	}

	return s.appointments.CreateAppointment(ctx, messages.CreateAppointmentCommand{
		AppointmentID: saga.AppointmentID,
		PatientID:     saga.PatientID,
		SlotID:        saga.SlotID,
	})
}

func (s *Saga) onPatientCreationFailed(ctx context.Context, envelope messages.Envelope) error {
	var event messages.PatientCreationFailedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	saga, err := s.store.FindByPatientID(ctx, event.PatientID)
	if err != nil || saga == nil {
		return err
	}
	if models.BookingStateTerminal(saga.State) {
		return nil
	}
	// The collaborator never created the patient, nothing to delete.
	saga.PatientID = ""
	return s.compensate(ctx, saga, models.BookingStateFailed, event.Reason)
}

func (s *Saga) onAppointmentCreated(ctx context.Context, envelope messages.Envelope) error {
	var event messages.AppointmentCreatedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	saga, err := s.store.FindByAppointmentID(ctx, event.AppointmentID)
	if err != nil || saga == nil {
		return err
	}
	if s.discard(saga, models.BookingStatePendingCreateAppointment, envelope.Name) {
		return nil
	}

	if err := s.deadlines.Cancel(ctx, constvars.BookingDeadlineName, saga.DeadlineHandle); err != nil {
		s.log.Warn("BookingSaga deadline cancel failed",
			zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
			zap.Error(err),
		)
	}

	// The completed booking keeps its seat; only the lock record goes away.
	release := messages.ReleaseFingerprintCommand{
		SlotID:      saga.SlotID,
		Fingerprint: saga.Fingerprint,
	}
	releaseEnvelope, err := messages.NewEnvelope(messages.CommandReleaseFingerprint, saga.SlotID, release)
	if err != nil {
		return err
	}
	if err := s.commandBus.Send(ctx, releaseEnvelope); err != nil {
		s.log.Warn("BookingSaga fingerprint release failed",
			zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
			zap.String(constvars.LoggingSlotIDKey, saga.SlotID),
			zap.Error(err),
		)
	}

	if err := s.transition(ctx, saga, models.BookingStateCompleted); err != nil {
		return err
	}

	confirm := messages.UpdateAppointmentStateCommand{
		AppointmentID: saga.AppointmentID,
		State:         messages.AppointmentStateBooked,
	}
	if err := s.appointments.UpdateAppointmentState(ctx, confirm); err != nil {
		s.log.Warn("BookingSaga appointment confirmation failed",
			zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
			zap.Error(err),
		)
	}

	completed := messages.BookingCompletedEvent{
		BookingID:     saga.BookingID,
		AppointmentID: saga.AppointmentID,
		PatientID:     saga.PatientID,
	}
	completedEnvelope, err := messages.NewEnvelope(messages.EventBookingCompleted, saga.BookingID, completed)
	if err != nil {
		return err
	}
	return s.eventBus.Publish(ctx, completedEnvelope)
}

func (s *Saga) onAppointmentCreationFailed(ctx context.Context, envelope messages.Envelope) error {
	var event messages.AppointmentCreationFailedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	saga, err := s.store.FindByAppointmentID(ctx, event.AppointmentID)
	if err != nil || saga == nil {
		return err
	}
	if models.BookingStateTerminal(saga.State) {
		return nil
	}
	return s.compensate(ctx, saga, models.BookingStateFailed, event.Reason)
}

func (s *Saga) onDeadline(ctx context.Context, envelope messages.Envelope) error {
	saga, err := s.store.FindByBookingID(ctx, envelope.Key)
	if err != nil || saga == nil {
		return err
	}
	if models.BookingStateTerminal(saga.State) {
		// Deadline fired after completion, nothing to do.
		return nil
	}
	return s.compensate(ctx, saga, models.BookingStateTimeout, messages.VerificationFailureTimeout)
}

// discard reports whether the event must be ignored: the saga is already
// terminal, or it arrived out of phase (a redelivery of an earlier step).
func (s *Saga) discard(saga *models.BookingSagaState, expectedState, eventName string) bool {
	if saga.State == expectedState {
		return false
	}
	s.log.Info("BookingSaga discarding event",
		zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
		zap.String(constvars.LoggingSagaStateKey, saga.State),
		zap.String(constvars.LoggingMessageNameKey, eventName),
	)
	return true
}

func (s *Saga) transition(ctx context.Context, saga *models.BookingSagaState, state string) error {
	saga.State = state
	saga.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, saga); err != nil {
		return err
	}
	s.metrics.IncrementSagaTransition("booking", state)
	s.log.Info("BookingSaga transition",
		zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
		zap.String(constvars.LoggingSagaStateKey, state),
	)
	return nil
}

// compensate undoes the saga's side effects and finishes it in finalState.
func (s *Saga) compensate(ctx context.Context, saga *models.BookingSagaState, finalState, reason string) error {
	if err := s.deadlines.Cancel(ctx, constvars.BookingDeadlineName, saga.DeadlineHandle); err != nil {
		s.log.Warn("BookingSaga deadline cancel failed",
			zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
			zap.Error(err),
		)
	}

	release := messages.ReleaseLockedSlotCommand{
		SlotID:      saga.SlotID,
		Fingerprint: saga.Fingerprint,
	}
	releaseEnvelope, err := messages.NewEnvelope(messages.CommandReleaseLockedSlot, saga.SlotID, release)
	if err != nil {
		return err
	}
	if err := s.commandBus.Send(ctx, releaseEnvelope); err != nil {
		s.log.Warn("BookingSaga slot release failed",
			zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
			zap.String(constvars.LoggingSlotIDKey, saga.SlotID),
			zap.Error(err),
		)
	}

	if saga.PatientID != "" {
		if err := s.patients.DeletePatient(ctx, messages.DeletePatientCommand{PatientID: saga.PatientID}); err != nil {
			s.log.Warn("BookingSaga patient delete failed",
				zap.String(constvars.LoggingBookingIDKey, saga.BookingID),
				zap.String(constvars.LoggingPatientIDKey, saga.PatientID),
				zap.Error(err),
			)
		}
	}

	saga.Reason = reason
	if err := s.transition(ctx, saga, finalState); err != nil {
		return err
	}

	rejected := messages.BookingRejectedEvent{
		BookingID: saga.BookingID,
		Reason:    reason,
	}
	rejectedEnvelope, err := messages.NewEnvelope(messages.EventBookingRejected, saga.BookingID, rejected)
	if err != nil {
		return err
	}
	return s.eventBus.Publish(ctx, rejectedEnvelope)
}
