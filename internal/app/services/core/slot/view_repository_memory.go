package slot

import (
	"context"
	"sort"
	"sync"

	"clinic-booking-service/internal/app/models"
)

// MemorySlotViewRepository is the in-memory read model store.
type MemorySlotViewRepository struct {
	mu    sync.RWMutex
	views map[string]models.SlotView
}

func NewMemorySlotViewRepository() *MemorySlotViewRepository {
	return &MemorySlotViewRepository{
		views: make(map[string]models.SlotView),
	}
}

func (repo *MemorySlotViewRepository) Save(ctx context.Context, view *models.SlotView) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.views[view.SlotID] = *view
	return nil
}

func (repo *MemorySlotViewRepository) FindByID(ctx context.Context, slotID string) (*models.SlotView, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	view, ok := repo.views[slotID]
	if !ok {
		return nil, nil
	}
	out := view
	return &out, nil
}

func (repo *MemorySlotViewRepository) FindByPackageAndDateRange(ctx context.Context, medicalPackageID, dateFrom, dateTo string) ([]models.SlotView, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.SlotView
	for _, view := range repo.views {
		if view.MedicalPackageID != medicalPackageID {
			continue
		}
		if view.Date < dateFrom || view.Date >= dateTo {
			continue
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Shift < out[j].Shift
	})
	return out, nil
}

// MemoryMedicalPackageRepository serves the package catalog from memory.
type MemoryMedicalPackageRepository struct {
	mu       sync.RWMutex
	packages []models.MedicalPackage
}

func NewMemoryMedicalPackageRepository(packages ...models.MedicalPackage) *MemoryMedicalPackageRepository {
	return &MemoryMedicalPackageRepository{packages: packages}
}

func (repo *MemoryMedicalPackageRepository) FindActive(ctx context.Context) ([]models.MedicalPackage, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.MedicalPackage
	for _, pkg := range repo.packages {
		if pkg.Active {
			out = append(out, pkg)
		}
	}
	return out, nil
}
