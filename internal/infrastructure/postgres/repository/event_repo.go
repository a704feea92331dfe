package repository

import (
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/mappers"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultEventRepository only ever inserts into the ledger table. No
// update or delete path exists on purpose.
type DefaultEventRepository struct {
	DB *gorm.DB
}

func NewDefaultEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{DB: db}
}

func (r *DefaultEventRepository) AppendEvent(event *domain.LifecycleEvent) error {
	eventModel := mappers.ToGORMEvent(event)
	if err := r.DB.Create(eventModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultEventRepository) GetEventsByVenue(venueID string, from, to time.Time) ([]*domain.LifecycleEvent, error) {
	var eventModels []models.LifecycleEventModel
	if err := r.DB.
		Where("venue_id = ?", venueID).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	return toDomainEvents(eventModels), nil
}

func (r *DefaultEventRepository) GetEventsByVerifier(verifiedBy string, from, to time.Time) ([]*domain.LifecycleEvent, error) {
	var eventModels []models.LifecycleEventModel
	if err := r.DB.
		Where("verified_by = ?", verifiedBy).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	return toDomainEvents(eventModels), nil
}

func (r *DefaultEventRepository) GetEventsByOrder(orderID string, eventType domain.EventType) ([]*domain.LifecycleEvent, error) {
	var eventModels []models.LifecycleEventModel
	if err := r.DB.
		Where("order_id = ? AND event_type = ?", orderID, eventType).
		Order("timestamp ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	return toDomainEvents(eventModels), nil
}

func (r *DefaultEventRepository) CountVerificationAttempts(orderID string) (int64, error) {
	var count int64
	if err := r.DB.Model(&models.LifecycleEventModel{}).
		Where("order_id = ? AND event_type = ?", orderID, domain.EventVerification).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainEvents(eventModels []models.LifecycleEventModel) []*domain.LifecycleEvent {
	events := make([]*domain.LifecycleEvent, len(eventModels))
	for i, eventModel := range eventModels {
		events[i] = mappers.ToDomainEvent(&eventModel)
	}
	return events
}
