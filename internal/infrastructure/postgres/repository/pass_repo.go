package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/mappers"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPassRepository struct {
	DB *gorm.DB
}

func NewDefaultPassRepository(db *gorm.DB) *DefaultPassRepository {
	return &DefaultPassRepository{DB: db}
}

func (r *DefaultPassRepository) CreatePass(pass *domain.Pass) error {
	passModel := mappers.ToGORMPass(pass)
	if err := r.DB.Create(passModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultPassRepository) GetPassByID(passID string) (*domain.Pass, error) {
	var passModel models.PassModel
	if err := r.DB.First(&passModel, "id = ?", passID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPassNotFound, passID)
		}
		return nil, err
	}

	return mappers.ToDomainPass(&passModel), nil
}

// RedeemPass is the one write that must be atomic: a single conditional
// UPDATE guarded on is_redeemed = false. Concurrent callers race
// against this statement in the database, the loser sees zero rows
// affected and gets ErrAlreadyRedeemed. The status history entry is
// appended in the same statement so the transition is all-or-nothing
// even if the client disconnects mid-request.
func (r *DefaultPassRepository) RedeemPass(passID, verifiedBy, method string, at time.Time) (*domain.Pass, error) {
	historyEntry, err := json.Marshal([]domain.StatusChange{
		{Status: domain.StatusRedeemed, Timestamp: at, UpdatedBy: verifiedBy},
	})
	if err != nil {
		return nil, err
	}

	res := r.DB.Model(&models.PassModel{}).
		Where("id = ? AND is_redeemed = ?", passID, false).
		Updates(map[string]interface{}{
			"is_redeemed":         true,
			"status":              domain.StatusRedeemed,
			"redeemed_at":         at,
			"verified_by":         verifiedBy,
			"verification_method": method,
			"status_history":      gorm.Expr("status_history || ?::jsonb", string(historyEntry)),
			"updated_at":          at,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.GetPassByID(passID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyRedeemed, passID)
	}

	return r.GetPassByID(passID)
}

// MarkExpired transitions active -> expired with the same conditional
// guard, so the sweeper can never overwrite a concurrent redemption.
func (r *DefaultPassRepository) MarkExpired(passID, updatedBy string, at time.Time) (bool, error) {
	historyEntry, err := json.Marshal([]domain.StatusChange{
		{Status: domain.StatusExpired, Timestamp: at, UpdatedBy: updatedBy},
	})
	if err != nil {
		return false, err
	}

	res := r.DB.Model(&models.PassModel{}).
		Where("id = ? AND status = ?", passID, domain.StatusActive).
		Updates(map[string]interface{}{
			"status":         domain.StatusExpired,
			"status_history": gorm.Expr("status_history || ?::jsonb", string(historyEntry)),
			"updated_at":     at,
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *DefaultPassRepository) FindExpiredActive(now time.Time, limit int) ([]*domain.Pass, error) {
	var passModels []models.PassModel
	if err := r.DB.
		Where("status = ?", domain.StatusActive).
		Where("expiry_date < ?", now).
		Limit(limit).
		Find(&passModels).Error; err != nil {
		return nil, err
	}

	passes := make([]*domain.Pass, len(passModels))
	for i, passModel := range passModels {
		passes[i] = mappers.ToDomainPass(&passModel)
	}

	return passes, nil
}
