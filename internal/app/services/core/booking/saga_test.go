package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/core/slot"
	"clinic-booking-service/internal/app/services/core/verification"
	"clinic-booking-service/internal/app/services/shared/bus"
	"clinic-booking-service/internal/app/services/shared/deadline"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakePatientClient simulates the patient collaborator: a create command is
// answered with a created or creation-failed event on the bus.
type fakePatientClient struct {
	bus        *bus.MemoryBus
	failCreate bool

	mu      sync.Mutex
	deleted []string
}

func (c *fakePatientClient) CreatePatient(ctx context.Context, command messages.CreatePatientCommand) error {
	if c.failCreate {
		event := messages.PatientCreationFailedEvent{PatientID: command.PatientID, Reason: "PATIENT_REJECTED"}
		envelope, err := messages.NewEnvelope(messages.EventPatientCreationFailed, command.PatientID, event)
		if err != nil {
			return err
		}
		return c.bus.Publish(ctx, envelope)
	}
	event := messages.PatientCreatedEvent{PatientID: command.PatientID}
	envelope, err := messages.NewEnvelope(messages.EventPatientCreated, command.PatientID, event)
	if err != nil {
		return err
	}
	return c.bus.Publish(ctx, envelope)
}

func (c *fakePatientClient) DeletePatient(ctx context.Context, command messages.DeletePatientCommand) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, command.PatientID)
	return nil
}

func (c *fakePatientClient) deletedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deleted)
}

type fakeAppointmentClient struct {
	bus        *bus.MemoryBus
	failCreate bool

	mu           sync.Mutex
	stateUpdates []messages.UpdateAppointmentStateCommand
}

func (c *fakeAppointmentClient) CreateAppointment(ctx context.Context, command messages.CreateAppointmentCommand) error {
	if c.failCreate {
		event := messages.AppointmentCreationFailedEvent{AppointmentID: command.AppointmentID, Reason: "APPOINTMENT_REJECTED"}
		envelope, err := messages.NewEnvelope(messages.EventAppointmentCreationFailed, command.AppointmentID, event)
		if err != nil {
			return err
		}
		return c.bus.Publish(ctx, envelope)
	}
	event := messages.AppointmentCreatedEvent{
		AppointmentID: command.AppointmentID,
		PatientID:     command.PatientID,
		SlotID:        command.SlotID,
	}
	envelope, err := messages.NewEnvelope(messages.EventAppointmentCreated, command.AppointmentID, event)
	if err != nil {
		return err
	}
	return c.bus.Publish(ctx, envelope)
}

func (c *fakeAppointmentClient) UpdateAppointmentState(ctx context.Context, command messages.UpdateAppointmentStateCommand) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateUpdates = append(c.stateUpdates, command)
	return nil
}

func (c *fakeAppointmentClient) stateUpdateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stateUpdates)
}

type captureNotificationClient struct {
	mu   sync.Mutex
	sent []messages.SendOTPVerificationCommand
}

func (c *captureNotificationClient) SendOTPVerification(ctx context.Context, command messages.SendOTPVerificationCommand) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, command)
	return nil
}

func (c *captureNotificationClient) codeFor(verificationID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, command := range c.sent {
		if command.VerificationID == verificationID {
			return command.VerificationCode, true
		}
	}
	return "", false
}

// bookingFixture wires the whole booking pipeline in memory: slot aggregate,
// booking saga, verification saga, projections, and fake collaborators.
type bookingFixture struct {
	bus            *bus.MemoryBus
	sagaStore      *MemoryBookingSagaStore
	statusRepo     *MemoryBookingStatusRepository
	slotViews      *slot.MemorySlotViewRepository
	patients       *fakePatientClient
	appointments   *fakeAppointmentClient
	notifications  *captureNotificationClient
	verifications  contracts.VerificationUsecase
	bookingUsecase contracts.BookingUsecase
}

func newBookingFixture(t *testing.T, patientFails, appointmentFails bool) *bookingFixture {
	t.Helper()
	logger := zap.NewNop()
	memoryBus := bus.NewMemoryBus(logger, nil)

	cfg := &config.InternalConfig{}
	cfg.App.PublicBaseURL = "https://clinic.example.com"
	cfg.App.EndpointPrefix = "api"
	cfg.App.Version = "v1"
	cfg.Booking.TimeoutInSeconds = 30
	cfg.Verification.TimeoutInSeconds = 600

	slotStore := slot.NewMemoryEventStore()
	slotManager := slot.NewManager(logger, slotStore, memoryBus, nil)
	slotManager.RegisterHandlers(memoryBus)

	slotViews := slot.NewMemorySlotViewRepository()
	slot.NewProjection(logger, slotViews).Subscribe(memoryBus)

	scheduler := deadline.NewScheduler(logger, deadline.NewMemoryDeadlineStore(), memoryBus, nil)

	patients := &fakePatientClient{bus: memoryBus, failCreate: patientFails}
	appointments := &fakeAppointmentClient{bus: memoryBus, failCreate: appointmentFails}
	notifications := &captureNotificationClient{}

	verificationStore := verification.NewMemoryVerificationSagaStore()
	verificationSaga := verification.NewSaga(logger, cfg, verificationStore, memoryBus, scheduler, notifications, nil)
	verificationSaga.RegisterHandlers(memoryBus)
	verificationSaga.Subscribe(memoryBus)

	sagaStore := NewMemoryBookingSagaStore()
	bookingSaga := NewSaga(logger, cfg, sagaStore, memoryBus, memoryBus, scheduler, patients, appointments, nil)
	bookingSaga.Subscribe(memoryBus)

	statusRepo := NewMemoryBookingStatusRepository()
	NewStatusProjection(logger, statusRepo).Subscribe(memoryBus)

	return &bookingFixture{
		bus:            memoryBus,
		sagaStore:      sagaStore,
		statusRepo:     statusRepo,
		slotViews:      slotViews,
		patients:       patients,
		appointments:   appointments,
		notifications:  notifications,
		verifications:  verification.NewVerificationUsecase(verificationStore, memoryBus, logger),
		bookingUsecase: NewBookingUsecase(memoryBus, statusRepo, logger),
	}
}

func (f *bookingFixture) createSlot(t *testing.T, slotID string, maxQuantity int) {
	t.Helper()
	command := messages.CreateSlotCommand{
		SlotID:           slotID,
		MedicalPackageID: "pkg-1",
		Date:             "2026-09-01",
		Shift:            messages.ShiftMorning,
		MaxQuantity:      maxQuantity,
	}
	envelope, err := messages.NewEnvelope(messages.CommandCreateSlot, slotID, command)
	assert.NoError(t, err)
	assert.NoError(t, f.bus.Send(context.Background(), envelope))
}

func (f *bookingFixture) book(t *testing.T, slotID, fingerprint string) (string, error) {
	t.Helper()
	response, err := f.bookingUsecase.CreateBooking(context.Background(), fingerprint, &requests.CreateBookingRequest{
		SlotID: slotID,
		Name:   "Jan Kowalski",
		Email:  "jan@example.com",
		Phone:  "+48123456789",
	})
	if err != nil {
		return "", err
	}
	return response.BookingID, nil
}

func (f *bookingFixture) waitForSagaState(t *testing.T, bookingID, state string) *models.BookingSagaState {
	t.Helper()
	var saga *models.BookingSagaState
	assert.Eventually(t, func() bool {
		found, err := f.sagaStore.FindByBookingID(context.Background(), bookingID)
		if err != nil || found == nil {
			return false
		}
		saga = found
		return found.State == state
	}, 3*time.Second, 10*time.Millisecond, "booking %s never reached %s", bookingID, state)
	return saga
}

// replyToChallenge waits for the OTP to go out, then submits it (or a wrong
// code) back through the verification endpoint.
func (f *bookingFixture) replyToChallenge(t *testing.T, bookingID string, correct bool) {
	t.Helper()
	var verificationID, code string
	assert.Eventually(t, func() bool {
		saga, err := f.sagaStore.FindByBookingID(context.Background(), bookingID)
		if err != nil || saga == nil || saga.VerificationID == "" {
			return false
		}
		sent, ok := f.notifications.codeFor(saga.VerificationID)
		if !ok {
			return false
		}
		verificationID, code = saga.VerificationID, sent
		return true
	}, 3*time.Second, 10*time.Millisecond)

	if !correct {
		code = "000000"
	}
	assert.NoError(t, f.verifications.SubmitReply(context.Background(), verificationID, code))
}

func (f *bookingFixture) remaining(t *testing.T, slotID string) int {
	t.Helper()
	view, err := f.slotViews.FindByID(context.Background(), slotID)
	assert.NoError(t, err)
	if view == nil {
		return -1
	}
	return view.Remaining
}

func TestBookingSaga_HappyPathCompletes(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 1)

	bookingID, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)

	f.replyToChallenge(t, bookingID, true)
	saga := f.waitForSagaState(t, bookingID, models.BookingStateCompleted)
	assert.NotEmpty(t, saga.PatientID)
	assert.NotEmpty(t, saga.AppointmentID)

	assert.Eventually(t, func() bool {
		status, err := f.bookingUsecase.GetBookingStatus(context.Background(), bookingID)
		return err == nil && status.Status == models.BookingStateCompleted && status.AppointmentID == saga.AppointmentID
	}, 3*time.Second, 10*time.Millisecond)

	// The completed booking keeps its seat.
	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 0
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, f.patients.deletedCount())
	assert.Equal(t, 1, f.appointments.stateUpdateCount(), "the appointment is confirmed exactly once")
}

func TestBookingSaga_WrongCodeCompensates(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 1)

	bookingID, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)

	f.replyToChallenge(t, bookingID, false)
	saga := f.waitForSagaState(t, bookingID, models.BookingStateFailed)
	assert.Equal(t, messages.VerificationFailureMismatch, saga.Reason)
	assert.Empty(t, saga.PatientID, "no patient was created before verification")

	// Capacity returns to the pool.
	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, f.patients.deletedCount())

	assert.Eventually(t, func() bool {
		status, err := f.bookingUsecase.GetBookingStatus(context.Background(), bookingID)
		return err == nil && status.Status == models.BookingStateFailed
	}, 3*time.Second, 10*time.Millisecond)
}

func TestBookingSaga_PatientCreationFailureCompensates(t *testing.T) {
	f := newBookingFixture(t, true, false)
	f.createSlot(t, "slot-1", 1)

	bookingID, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)

	f.replyToChallenge(t, bookingID, true)
	saga := f.waitForSagaState(t, bookingID, models.BookingStateFailed)
	assert.Equal(t, "PATIENT_REJECTED", saga.Reason)

	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, f.patients.deletedCount(), "nothing to delete when the collaborator rejected the create")
}

func TestBookingSaga_AppointmentFailureDeletesPatient(t *testing.T) {
	f := newBookingFixture(t, false, true)
	f.createSlot(t, "slot-1", 1)

	bookingID, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)

	f.replyToChallenge(t, bookingID, true)
	saga := f.waitForSagaState(t, bookingID, models.BookingStateFailed)
	assert.Equal(t, "APPOINTMENT_REJECTED", saga.Reason)

	assert.Eventually(t, func() bool {
		return f.patients.deletedCount() == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 1
	}, 3*time.Second, 10*time.Millisecond)
}

func TestBookingSaga_DeadlineTimesOutAndReleases(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 1)

	bookingID, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)
	f.waitForSagaState(t, bookingID, models.BookingStatePendingVerifyPatientPhone)

	envelope, err := messages.NewEnvelope(constvars.BookingDeadlineName, bookingID, struct{}{})
	assert.NoError(t, err)
	assert.NoError(t, f.bus.Publish(context.Background(), envelope))

	f.waitForSagaState(t, bookingID, models.BookingStateTimeout)
	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 1
	}, 3*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		status, err := f.bookingUsecase.GetBookingStatus(context.Background(), bookingID)
		return err == nil && status.Status == models.BookingStateTimeout
	}, 3*time.Second, 10*time.Millisecond)
}

func TestBookingSaga_LateDeadlineAfterCompletionIsDiscarded(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 1)

	bookingID, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)
	f.replyToChallenge(t, bookingID, true)
	f.waitForSagaState(t, bookingID, models.BookingStateCompleted)

	envelope, err := messages.NewEnvelope(constvars.BookingDeadlineName, bookingID, struct{}{})
	assert.NoError(t, err)
	assert.NoError(t, f.bus.Publish(context.Background(), envelope))

	time.Sleep(100 * time.Millisecond)
	saga, err := f.sagaStore.FindByBookingID(context.Background(), bookingID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStateCompleted, saga.State)
	assert.Equal(t, 0, f.remaining(t, "slot-1"), "the completed seat stays consumed")
}

func TestBookingSaga_TerminalStateIsImmutable(t *testing.T) {
	store := NewMemoryBookingSagaStore()

	saga := &models.BookingSagaState{BookingID: "booking-1", State: models.BookingStateCompleted}
	assert.NoError(t, store.Save(context.Background(), saga))

	saga.State = models.BookingStateFailed
	err := store.Save(context.Background(), saga)
	assert.True(t, exceptions.HasCode(err, exceptions.CodeInvariantViolation))
}

func TestBookingSaga_SameFingerprintCannotDoubleBookSlot(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 2)

	_, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)

	_, err = f.book(t, "slot-1", "fp-a")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotLockConflict))
}

func TestBookingSaga_MissingFingerprintRejected(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 1)

	_, err := f.book(t, "slot-1", "")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeValidation))
}

func TestBookingSaga_UnknownBookingStatus(t *testing.T) {
	f := newBookingFixture(t, false, false)

	_, err := f.bookingUsecase.GetBookingStatus(context.Background(), "booking-missing")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
}

// Full contention scenario: a slot with two seats, four patients.
func TestBookingSaga_ContendedSlotLifecycle(t *testing.T) {
	f := newBookingFixture(t, false, false)
	f.createSlot(t, "slot-1", 2)

	bookingA, err := f.book(t, "slot-1", "fp-a")
	assert.NoError(t, err)
	bookingB, err := f.book(t, "slot-1", "fp-b")
	assert.NoError(t, err)

	// Third contender bounces off the exhausted slot.
	_, err = f.book(t, "slot-1", "fp-c")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotUnavailable))

	// A completes and keeps its seat, B fumbles the code and frees one.
	f.replyToChallenge(t, bookingA, true)
	f.waitForSagaState(t, bookingA, models.BookingStateCompleted)
	f.replyToChallenge(t, bookingB, false)
	f.waitForSagaState(t, bookingB, models.BookingStateFailed)

	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 1
	}, 3*time.Second, 10*time.Millisecond)

	// The freed seat is available to a fourth patient.
	bookingD, err := f.book(t, "slot-1", "fp-d")
	assert.NoError(t, err)
	f.replyToChallenge(t, bookingD, true)
	f.waitForSagaState(t, bookingD, models.BookingStateCompleted)

	assert.Eventually(t, func() bool {
		return f.remaining(t, "slot-1") == 0
	}, 3*time.Second, 10*time.Millisecond)
}
