package verification

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/shared/bus"
	"clinic-booking-service/internal/app/services/shared/deadline"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeNotificationClient struct {
	mu   sync.Mutex
	sent []messages.SendOTPVerificationCommand
}

func (c *fakeNotificationClient) SendOTPVerification(ctx context.Context, command messages.SendOTPVerificationCommand) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, command)
	return nil
}

func (c *fakeNotificationClient) last() (messages.SendOTPVerificationCommand, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return messages.SendOTPVerificationCommand{}, false
	}
	return c.sent[len(c.sent)-1], true
}

type verificationFixture struct {
	bus           *bus.MemoryBus
	store         *MemoryVerificationSagaStore
	notifications *fakeNotificationClient
	usecase       contracts.VerificationUsecase
}

func newVerificationFixture() *verificationFixture {
	memoryBus := bus.NewMemoryBus(zap.NewNop(), nil)
	store := NewMemoryVerificationSagaStore()
	notifications := &fakeNotificationClient{}

	cfg := &config.InternalConfig{}
	cfg.App.PublicBaseURL = "https://clinic.example.com"
	cfg.App.EndpointPrefix = "api"
	cfg.App.Version = "v1"
	cfg.Verification.TimeoutInSeconds = 600

	scheduler := deadline.NewScheduler(zap.NewNop(), deadline.NewMemoryDeadlineStore(), memoryBus, nil)
	saga := NewSaga(zap.NewNop(), cfg, store, memoryBus, scheduler, notifications, nil)
	saga.RegisterHandlers(memoryBus)
	saga.Subscribe(memoryBus)

	return &verificationFixture{
		bus:           memoryBus,
		store:         store,
		notifications: notifications,
		usecase:       NewVerificationUsecase(store, memoryBus, zap.NewNop()),
	}
}

func (f *verificationFixture) startChallenge(t *testing.T, verificationID string) {
	t.Helper()
	command := messages.VerifyEmailCommand{
		VerificationID: verificationID,
		Email:          "jan@example.com",
	}
	envelope, err := messages.NewEnvelope(messages.CommandVerifyEmail, verificationID, command)
	assert.NoError(t, err)
	assert.NoError(t, f.bus.Send(context.Background(), envelope))
}

func (f *verificationFixture) fireDeadline(t *testing.T, verificationID string) {
	t.Helper()
	envelope, err := messages.NewEnvelope(constvars.VerificationDeadlineName, verificationID, struct{}{})
	assert.NoError(t, err)
	assert.NoError(t, f.bus.Publish(context.Background(), envelope))
}

func (f *verificationFixture) waitForState(t *testing.T, verificationID, state string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		challenge, err := f.store.FindByID(context.Background(), verificationID)
		return err == nil && challenge != nil && challenge.State == state
	}, 2*time.Second, 10*time.Millisecond)
}

func TestVerification_ChallengeSendsSixDigitCode(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")

	sent, ok := f.notifications.last()
	assert.True(t, ok)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), sent.VerificationCode)
	assert.Contains(t, sent.CallbackURL, "https://clinic.example.com/api/v1/email-verification")
	assert.Contains(t, sent.CallbackURL, "verificationId=verif-1")
	assert.Contains(t, sent.CallbackURL, "code="+sent.VerificationCode)

	challenge, err := f.store.FindByID(context.Background(), "verif-1")
	assert.NoError(t, err)
	assert.Equal(t, models.VerificationStatePendingReply, challenge.State)
	assert.Equal(t, sent.VerificationCode, challenge.Code)
}

func TestVerification_CommandReplayDoesNotReissueCode(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")
	f.startChallenge(t, "verif-1")

	f.notifications.mu.Lock()
	defer f.notifications.mu.Unlock()
	assert.Len(t, f.notifications.sent, 1)
}

func TestVerification_CorrectReplyVerifies(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")
	sent, _ := f.notifications.last()

	var verified sync.Map
	f.bus.Subscribe(messages.EventEmailVerified, func(ctx context.Context, envelope messages.Envelope) error {
		verified.Store(envelope.Key, true)
		return nil
	})

	assert.NoError(t, f.usecase.SubmitReply(context.Background(), "verif-1", sent.VerificationCode))
	f.waitForState(t, "verif-1", models.VerificationStateVerified)

	assert.Eventually(t, func() bool {
		_, ok := verified.Load("verif-1")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestVerification_WrongReplyFailsWithMismatch(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")

	reasons := make(chan string, 1)
	f.bus.Subscribe(messages.EventEmailVerificationFailed, func(ctx context.Context, envelope messages.Envelope) error {
		var event messages.EmailVerificationFailedEvent
		if err := envelope.Decode(&event); err != nil {
			return err
		}
		reasons <- event.Reason
		return nil
	})

	assert.NoError(t, f.usecase.SubmitReply(context.Background(), "verif-1", "000000"))
	f.waitForState(t, "verif-1", models.VerificationStateCodeMismatch)

	select {
	case reason := <-reasons:
		assert.Equal(t, messages.VerificationFailureMismatch, reason)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a failure event")
	}
}

func TestVerification_CorrectReplyAfterMismatchIsRejected(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")
	sent, _ := f.notifications.last()

	assert.NoError(t, f.usecase.SubmitReply(context.Background(), "verif-1", "000000"))
	f.waitForState(t, "verif-1", models.VerificationStateCodeMismatch)

	err := f.usecase.SubmitReply(context.Background(), "verif-1", sent.VerificationCode)
	assert.Error(t, err)

	challenge, findErr := f.store.FindByID(context.Background(), "verif-1")
	assert.NoError(t, findErr)
	assert.Equal(t, models.VerificationStateCodeMismatch, challenge.State)
}

func TestVerification_DeadlineTimesOut(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")

	f.fireDeadline(t, "verif-1")
	f.waitForState(t, "verif-1", models.VerificationStateTimeout)
}

func TestVerification_LateDeadlineAfterVerifyIsDiscarded(t *testing.T) {
	f := newVerificationFixture()
	f.startChallenge(t, "verif-1")
	sent, _ := f.notifications.last()

	assert.NoError(t, f.usecase.SubmitReply(context.Background(), "verif-1", sent.VerificationCode))
	f.waitForState(t, "verif-1", models.VerificationStateVerified)

	f.fireDeadline(t, "verif-1")

	// Gives the discarded deadline time to be handled.
	time.Sleep(50 * time.Millisecond)
	challenge, err := f.store.FindByID(context.Background(), "verif-1")
	assert.NoError(t, err)
	assert.Equal(t, models.VerificationStateVerified, challenge.State)
}

func TestVerification_ReplyToUnknownChallenge(t *testing.T) {
	f := newVerificationFixture()

	err := f.usecase.SubmitReply(context.Background(), "verif-missing", "123456")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
}
