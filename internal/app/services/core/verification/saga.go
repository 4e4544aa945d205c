package verification

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/shared/metrics"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

// Saga runs one email OTP challenge per verification ID. A challenge accepts
// exactly one reply: the first reply or the deadline decides the outcome, and
// every later reply or late deadline is discarded against the stored state.
type Saga struct {
	log           *zap.Logger
	cfg           *config.InternalConfig
	store         contracts.VerificationSagaStore
	eventBus      contracts.EventBus
	deadlines     contracts.DeadlineScheduler
	notifications contracts.NotificationCommandClient
	metrics       *metrics.Metrics
}

func NewSaga(
	logger *zap.Logger,
	cfg *config.InternalConfig,
	store contracts.VerificationSagaStore,
	eventBus contracts.EventBus,
	deadlines contracts.DeadlineScheduler,
	notificationClient contracts.NotificationCommandClient,
	m *metrics.Metrics,
) *Saga {
	return &Saga{
		log:           logger,
		cfg:           cfg,
		store:         store,
		eventBus:      eventBus,
		deadlines:     deadlines,
		notifications: notificationClient,
		metrics:       m,
	}
}

// RegisterHandlers binds the verification command.
func (s *Saga) RegisterHandlers(commandBus contracts.CommandBus) {
	commandBus.RegisterHandler(messages.CommandVerifyEmail, s.handleVerifyEmail)
}

// Subscribe attaches the saga to the reply and deadline events.
func (s *Saga) Subscribe(eventBus contracts.EventBus) {
	eventBus.Subscribe(messages.EventEmailVerificationReplied, s.onReplied)
	eventBus.Subscribe(constvars.VerificationDeadlineName, s.onDeadline)
}

func (s *Saga) handleVerifyEmail(ctx context.Context, envelope messages.Envelope) error {
	var command messages.VerifyEmailCommand
	if err := envelope.Decode(&command); err != nil {
		return err
	}

	existing, err := s.store.FindByID(ctx, command.VerificationID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Redelivered command, the challenge is already out.
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	timeout := time.Duration(s.cfg.Verification.TimeoutInSeconds) * time.Second
	handle, err := s.deadlines.Schedule(ctx, timeout, constvars.VerificationDeadlineName, command.VerificationID)
	if err != nil {
		return err
	}

	challenge := &models.VerificationChallenge{
		VerificationID: command.VerificationID,
		Email:          command.Email,
		Code:           code,
		DeadlineHandle: handle,
		State:          models.VerificationStatePendingReply,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.store.Save(ctx, challenge); err != nil {
		return err
	}
	s.metrics.IncrementSagaTransition("verification", challenge.State)

	started := messages.EmailVerificationStartedEvent{
		VerificationID: challenge.VerificationID,
		Email:          challenge.Email,
		Code:           code,
	}
	startedEnvelope, err := messages.NewEnvelope(messages.EventEmailVerificationStarted, challenge.VerificationID, started)
	if err != nil {
		return err
	}
	if err := s.eventBus.Publish(ctx, startedEnvelope); err != nil {
		return err
	}

	return s.notifications.SendOTPVerification(ctx, messages.SendOTPVerificationCommand{
		VerificationID:   challenge.VerificationID,
		To:               challenge.Email,
		VerificationCode: code,
		CallbackURL:      s.callbackURL(challenge.VerificationID, code),
	})
}

func (s *Saga) onReplied(ctx context.Context, envelope messages.Envelope) error {
	var event messages.EmailVerificationRepliedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	challenge, err := s.store.FindByID(ctx, event.VerificationID)
	if err != nil || challenge == nil {
		return err
	}
	if models.VerificationStateTerminal(challenge.State) {
		s.log.Info("VerificationSaga discarding reply for settled challenge",
			zap.String(constvars.LoggingVerificationIDKey, challenge.VerificationID),
			zap.String(constvars.LoggingSagaStateKey, challenge.State),
		)
		return nil
	}

	if err := s.deadlines.Cancel(ctx, constvars.VerificationDeadlineName, challenge.DeadlineHandle); err != nil {
		s.log.Warn("VerificationSaga deadline cancel failed",
			zap.String(constvars.LoggingVerificationIDKey, challenge.VerificationID),
			zap.Error(err),
		)
	}

	if codesMatch(challenge.Code, event.VerificationCode) {
		if err := s.settle(ctx, challenge, models.VerificationStateVerified); err != nil {
			return err
		}
		verified := messages.EmailVerifiedEvent{
			VerificationID: challenge.VerificationID,
			Email:          challenge.Email,
		}
		verifiedEnvelope, err := messages.NewEnvelope(messages.EventEmailVerified, challenge.VerificationID, verified)
		if err != nil {
			return err
		}
		return s.eventBus.Publish(ctx, verifiedEnvelope)
	}

	if err := s.settle(ctx, challenge, models.VerificationStateCodeMismatch); err != nil {
		return err
	}
	return s.publishFailed(ctx, challenge, messages.VerificationFailureMismatch)
}

func (s *Saga) onDeadline(ctx context.Context, envelope messages.Envelope) error {
	challenge, err := s.store.FindByID(ctx, envelope.Key)
	if err != nil || challenge == nil {
		return err
	}
	if models.VerificationStateTerminal(challenge.State) {
		return nil
	}

	if err := s.settle(ctx, challenge, models.VerificationStateTimeout); err != nil {
		return err
	}
	return s.publishFailed(ctx, challenge, messages.VerificationFailureTimeout)
}

func (s *Saga) settle(ctx context.Context, challenge *models.VerificationChallenge, state string) error {
	challenge.State = state
	challenge.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, challenge); err != nil {
		return err
	}
	s.metrics.IncrementSagaTransition("verification", state)
	s.log.Info("VerificationSaga settled",
		zap.String(constvars.LoggingVerificationIDKey, challenge.VerificationID),
		zap.String(constvars.LoggingSagaStateKey, state),
	)
	return nil
}

func (s *Saga) publishFailed(ctx context.Context, challenge *models.VerificationChallenge, reason string) error {
	failed := messages.EmailVerificationFailedEvent{
		VerificationID: challenge.VerificationID,
		Email:          challenge.Email,
		Reason:         reason,
	}
	failedEnvelope, err := messages.NewEnvelope(messages.EventEmailVerificationFailed, challenge.VerificationID, failed)
	if err != nil {
		return err
	}
	return s.eventBus.Publish(ctx, failedEnvelope)
}

func (s *Saga) callbackURL(verificationID, code string) string {
	return fmt.Sprintf("%s/%s/%s/email-verification?verificationId=%s&code=%s",
		s.cfg.App.PublicBaseURL,
		s.cfg.App.EndpointPrefix,
		s.cfg.App.Version,
		verificationID,
		code,
	)
}
