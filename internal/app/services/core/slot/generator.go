package slot

import (
	"context"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Generator maintains a rolling window of open slots: on every cron tick the
// leader creates morning and afternoon slots for each active medical package,
// WeeksAhead weeks out. Slot IDs are deterministic, so re-running over an
// existing window is a no-op.
type Generator struct {
	log        *zap.Logger
	cfg        *config.InternalConfig
	locker     contracts.LockerService
	packages   contracts.MedicalPackageRepository
	commandBus contracts.CommandBus

	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func NewGenerator(
	logger *zap.Logger,
	cfg *config.InternalConfig,
	lockerService contracts.LockerService,
	packageRepository contracts.MedicalPackageRepository,
	commandBus contracts.CommandBus,
) *Generator {
	return &Generator{
		log:        logger,
		cfg:        cfg,
		locker:     lockerService,
		packages:   packageRepository,
		commandBus: commandBus,
	}
}

// Start schedules the generation loop with the configured cron spec.
func (g *Generator) Start(ctx context.Context) {
	g.runCtx, g.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := g.cfg.SlotGeneration.CronSpec
	_, err := c.AddFunc(spec, func() { g.runOnce(g.runCtx) })
	if err != nil {
		g.log.Warn("slot.generator: invalid cron spec; falling back to @daily", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@daily", func() { g.runOnce(g.runCtx) })
	}
	c.Start()
	g.cron = c
}

// Stop stops the cron and waits for a running generation to finish.
func (g *Generator) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
	if g.cron != nil {
		ctx := g.cron.Stop()
		<-ctx.Done()
	}
}

func (g *Generator) runOnce(ctx context.Context) {
	ttl := 2 * time.Minute
	acquired, token, err := g.locker.TryLock(ctx, constvars.SlotGeneratorLeaderLockKey, ttl)
	if err != nil {
		g.log.Warn("slot.generator: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		g.log.Info("slot.generator: leader lock not acquired; another instance is running")
		return
	}
	defer g.locker.Unlock(ctx, constvars.SlotGeneratorLeaderLockKey, token)

	packages, err := g.packages.FindActive(ctx)
	if err != nil {
		g.log.Warn("slot.generator: package lookup failed", zap.Error(err))
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	days := g.cfg.SlotGeneration.WeeksAhead * 7
	created := 0
	for _, pkg := range packages {
		for day := 0; day < days; day++ {
			date := today.AddDate(0, 0, day).Format(messages.DateLayout)
			for _, shift := range []messages.Shift{messages.ShiftMorning, messages.ShiftAfternoon} {
				if err := g.createSlot(ctx, pkg.ID, date, shift); err != nil {
					g.log.Warn("slot.generator: create failed",
						zap.String("medical_package_id", pkg.ID),
						zap.String("date", date),
						zap.String("shift", string(shift)),
						zap.Error(err),
					)
					continue
				}
				created++
			}
		}
	}

	g.log.Info("slot.generator: run finished",
		zap.Int("packages", len(packages)),
		zap.Int("slots_issued", created),
	)
}

func (g *Generator) createSlot(ctx context.Context, medicalPackageID, date string, shift messages.Shift) error {
	slotID := slotIDFor(medicalPackageID, date, shift)
	command := messages.CreateSlotCommand{
		SlotID:           slotID,
		MedicalPackageID: medicalPackageID,
		Date:             date,
		Shift:            shift,
		MaxQuantity:      g.cfg.SlotGeneration.DefaultMaxQuantity,
	}
	envelope, err := messages.NewEnvelope(messages.CommandCreateSlot, slotID, command)
	if err != nil {
		return err
	}
	return g.commandBus.Send(ctx, envelope)
}
