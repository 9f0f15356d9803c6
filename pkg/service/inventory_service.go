package service

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

// searchLimit bounds every inventory query.
const searchLimit = 50

// InventoryService answers filtered queries over the car inventory.
type InventoryService struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db, logger: utils.GetLogger()}
}

// ListInventory returns all cars on the lot.
func (s *InventoryService) ListInventory() ([]models.CarInventory, error) {
	var cars []models.CarInventory
	if err := s.db.Order("id ASC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return cars, nil
}

// SearchCars returns the cars matching every supplied constraint.
// Numeric fields use -1 to mean "no constraint"; string fields use the empty
// string. Make/model/color match by case-insensitive substring, year and
// price ranges by inclusive bound, mileage as an inclusive maximum, and
// stock number / VIN by exact match.
func (s *InventoryService) SearchCars(filter models.CarFilter) ([]models.CarInventory, error) {
	query := s.db.Model(&models.CarInventory{})

	if v := strings.TrimSpace(filter.Make); v != "" {
		query = query.Where("LOWER(make) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(filter.Model); v != "" {
		query = query.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(filter.Color); v != "" {
		query = query.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if filter.Year != -1 {
		query = query.Where("year >= ?", filter.Year)
	}
	if filter.MaxYear != -1 {
		query = query.Where("year <= ?", filter.MaxYear)
	}
	if filter.Price != -1 {
		query = query.Where("price >= ?", filter.Price)
	}
	if filter.MaxPrice != -1 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Mileage != -1 {
		query = query.Where("mileage <= ?", filter.Mileage)
	}
	if v := strings.TrimSpace(filter.StockNumber); v != "" {
		query = query.Where("stock_number = ?", v)
	}
	if v := strings.TrimSpace(filter.VIN); v != "" {
		query = query.Where("vin = ?", v)
	}

	var cars []models.CarInventory
	if err := query.Order("price ASC").Limit(searchLimit).Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("search cars: %w", err)
	}

	s.logger.Debug("inventory search", "results", len(cars), "make", filter.Make, "model", filter.Model)
	return cars, nil
}
