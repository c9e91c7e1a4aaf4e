package service

import (
	"time"

	"torqrides/internal/booking"
	"torqrides/internal/cache"
	"torqrides/internal/db"
	"torqrides/internal/entities"
	"torqrides/internal/repository"
	"torqrides/internal/utils"
)

type MotorcycleService struct {
	Repo    *repository.MotorcycleRepository
	catalog *cache.CatalogCache
}

func NewMotorcycleService(repo *repository.MotorcycleRepository, catalog *cache.CatalogCache) *MotorcycleService {
	return &MotorcycleService{Repo: repo, catalog: catalog}
}

// ListMotorcycles returns the catalog, optionally filtered by category, with
// today's display rate attached to each listing. The listing set is cached;
// display rates are recomputed per request since they flip on day boundaries.
func (s *MotorcycleService) ListMotorcycles(category string, now time.Time) ([]entities.MotorcycleResponse, error) {
	category = utils.NormalizeCategory(category)

	motorcycles, err := s.catalog.ListMotorcycles(category, func() ([]db.Motorcycle, error) {
		return s.Repo.ListMotorcycles(category)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]entities.MotorcycleResponse, 0, len(motorcycles))
	for _, m := range motorcycles {
		responses = append(responses, toMotorcycleResponse(m, now))
	}
	return responses, nil
}

func (s *MotorcycleService) GetMotorcycle(id int, now time.Time) (*entities.MotorcycleResponse, error) {
	m, err := s.Repo.GetMotorcycleByID(id)
	if err != nil {
		return nil, err
	}
	resp := toMotorcycleResponse(*m, now)
	return &resp, nil
}

func (s *MotorcycleService) CreateMotorcycle(m *db.Motorcycle) error {
	if err := s.Repo.CreateMotorcycle(m); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

func (s *MotorcycleService) UpdateMotorcycle(m *db.Motorcycle) error {
	if err := s.Repo.UpdateMotorcycle(m); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

func (s *MotorcycleService) UpdateStock(id, totalStock int) error {
	if err := s.Repo.UpdateStock(id, totalStock); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

func (s *MotorcycleService) DeleteMotorcycle(id int) error {
	if err := s.Repo.DeleteMotorcycle(id); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

func toMotorcycleResponse(m db.Motorcycle, now time.Time) entities.MotorcycleResponse {
	rates := booking.RateSchedule{WeekdayRate: m.WeekdayRate, WeekendRate: m.WeekendRate}
	return entities.MotorcycleResponse{
		ID:          m.ID,
		Make:        m.Make,
		Model:       m.Model,
		Category:    m.Category,
		WeekdayRate: m.WeekdayRate,
		WeekendRate: m.WeekendRate,
		DisplayRate: booking.SelectDailyRate(rates, now),
		TotalStock:  m.TotalStock,
		ImageURL:    m.ImageURL,
		Description: m.Description,
	}
}
