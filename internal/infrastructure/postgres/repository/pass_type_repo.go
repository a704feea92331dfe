package repository

import (
	"errors"
	"fmt"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/mappers"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultVenuePassTypeRepository reads the venue admission catalog.
// Catalog writes happen in the venue management service, not here.
type DefaultVenuePassTypeRepository struct {
	DB *gorm.DB
}

func NewDefaultVenuePassTypeRepository(db *gorm.DB) *DefaultVenuePassTypeRepository {
	return &DefaultVenuePassTypeRepository{DB: db}
}

func (r *DefaultVenuePassTypeRepository) GetVenuePassType(venueID, passType string) (*domain.VenuePassType, error) {
	var model models.VenuePassTypeModel
	if err := r.DB.First(&model, "venue_id = ? AND type = ?", venueID, passType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s at venue %s", domain.ErrPassTypeUnavailable, passType, venueID)
		}
		return nil, err
	}

	return mappers.ToDomainVenuePassType(&model), nil
}
