package slot

import (
	"context"
	"testing"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/shared/bus"
	"clinic-booking-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProjection_TracksCapacityThroughLifecycle(t *testing.T) {
	f := newSlotFixture()
	views := NewMemorySlotViewRepository()
	NewProjection(zap.NewNop(), views).Subscribe(f.bus)

	f.createSlot(t, "slot-1", 2)
	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))
	assert.NoError(t, f.lockSlot("slot-1", "booking-b", "fp-b"))
	assert.NoError(t, f.releaseLocked("slot-1", "fp-b"))
	assert.NoError(t, f.releaseFingerprint("slot-1", "fp-a"))
	assert.NoError(t, f.updateMaxQuantity("slot-1", 4))

	assert.Eventually(t, func() bool {
		view, err := views.FindByID(context.Background(), "slot-1")
		if err != nil || view == nil {
			return false
		}
		// 2 seats, one consumed by the completed booking, plus 2 added.
		return view.MaxQuantity == 4 && view.Remaining == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSlotUsecase_FindSlotsDefaultsDateWindow(t *testing.T) {
	f := newSlotFixture()
	views := NewMemorySlotViewRepository()
	NewProjection(zap.NewNop(), views).Subscribe(f.bus)
	usecase := NewSlotUsecase(f.bus, views, zap.NewNop())

	today := time.Now().UTC().Format("2006-01-02")
	outside := time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")

	created, err := usecase.CreateSlot(context.Background(), &requests.CreateSlotRequest{
		MedicalPackageID: "pkg-1",
		Date:             today,
		Shift:            "MORNING",
		MaxQuantity:      5,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.SlotID)

	_, err = usecase.CreateSlot(context.Background(), &requests.CreateSlotRequest{
		MedicalPackageID: "pkg-1",
		Date:             outside,
		Shift:            "MORNING",
		MaxQuantity:      5,
	})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		slots, err := usecase.FindSlots(context.Background(), &requests.FindSlotsRequest{MedicalPackageID: "pkg-1"})
		return err == nil && len(slots) == 1
	}, 2*time.Second, 10*time.Millisecond)

	slots, err := usecase.FindSlots(context.Background(), &requests.FindSlotsRequest{MedicalPackageID: "pkg-1"})
	assert.NoError(t, err)
	assert.Equal(t, created.SlotID, slots[0].SlotID)
	assert.Equal(t, 5, slots[0].Remaining)
}

type grantingLocker struct{}

func (grantingLocker) TryLock(ctx context.Context, key string, exp time.Duration) (bool, string, error) {
	return true, "token", nil
}

func (grantingLocker) Unlock(ctx context.Context, key, lockValue string) error {
	return nil
}

func TestGenerator_CreatesRollingWindow(t *testing.T) {
	f := newSlotFixture()
	views := NewMemorySlotViewRepository()
	NewProjection(zap.NewNop(), views).Subscribe(f.bus)

	cfg := &config.InternalConfig{}
	cfg.SlotGeneration.WeeksAhead = 1
	cfg.SlotGeneration.DefaultMaxQuantity = 5

	packages := NewMemoryMedicalPackageRepository(
		models.MedicalPackage{ID: "pkg-1", Name: "Basic", Active: true},
		models.MedicalPackage{ID: "pkg-2", Name: "Retired", Active: false},
	)
	generator := NewGenerator(zap.NewNop(), cfg, grantingLocker{}, packages, f.bus)

	generator.runOnce(context.Background())
	// A second run over the same window must not create duplicates.
	generator.runOnce(context.Background())

	from := time.Now().UTC().Format("2006-01-02")
	to := time.Now().UTC().AddDate(0, 0, 8).Format("2006-01-02")
	assert.Eventually(t, func() bool {
		slots, err := views.FindByPackageAndDateRange(context.Background(), "pkg-1", from, to)
		return err == nil && len(slots) == 14
	}, 2*time.Second, 10*time.Millisecond)

	slots, err := views.FindByPackageAndDateRange(context.Background(), "pkg-2", from, to)
	assert.NoError(t, err)
	assert.Empty(t, slots, "inactive packages get no slots")
}

func TestSlotUsecase_CreateSlotIsDeterministic(t *testing.T) {
	f := newSlotFixture()
	views := NewMemorySlotViewRepository()
	usecase := NewSlotUsecase(f.bus, views, zap.NewNop())

	request := &requests.CreateSlotRequest{
		MedicalPackageID: "pkg-1",
		Date:             "2026-09-01",
		Shift:            "AFTERNOON",
		MaxQuantity:      5,
	}
	first, err := usecase.CreateSlot(context.Background(), request)
	assert.NoError(t, err)
	second, err := usecase.CreateSlot(context.Background(), request)
	assert.NoError(t, err)
	assert.Equal(t, first.SlotID, second.SlotID)
}

func TestSlotUsecase_RejectsBadDate(t *testing.T) {
	f := newSlotFixture()
	usecase := NewSlotUsecase(f.bus, NewMemorySlotViewRepository(), zap.NewNop())

	_, err := usecase.CreateSlot(context.Background(), &requests.CreateSlotRequest{
		MedicalPackageID: "pkg-1",
		Date:             "01-09-2026",
		Shift:            "MORNING",
		MaxQuantity:      5,
	})
	assert.Error(t, err)
}

var _ = bus.NewMemoryBus
