package mappers

import (
	"encoding/json"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/models"
)

func ToDomainPass(model *models.PassModel) *domain.Pass {
	var history []domain.StatusChange
	if model.StatusHistory != "" {
		_ = json.Unmarshal([]byte(model.StatusHistory), &history)
	}

	return &domain.Pass{
		ID:            model.ID,
		VenueID:       model.VenueID,
		UserID:        model.UserID,
		Type:          model.Type,
		PurchasePrice: model.PurchasePrice,
		PurchaseDate:  model.PurchaseDate,
		ExpiryDate:    model.ExpiryDate,
		Status:        model.Status,
		Redemption: domain.RedemptionStatus{
			IsRedeemed:         model.IsRedeemed,
			RedeemedAt:         model.RedeemedAt,
			VerifiedBy:         model.VerifiedBy,
			VerificationMethod: model.VerificationMethod,
		},
		VerificationCode: model.VerificationCode,
		StatusHistory:    history,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMPass(pass *domain.Pass) *models.PassModel {
	history, _ := json.Marshal(pass.StatusHistory)

	return &models.PassModel{
		ID:                 pass.ID,
		VenueID:            pass.VenueID,
		UserID:             pass.UserID,
		Type:               pass.Type,
		PurchasePrice:      pass.PurchasePrice,
		PurchaseDate:       pass.PurchaseDate,
		ExpiryDate:         pass.ExpiryDate,
		Status:             pass.Status,
		IsRedeemed:         pass.Redemption.IsRedeemed,
		RedeemedAt:         pass.Redemption.RedeemedAt,
		VerifiedBy:         pass.Redemption.VerifiedBy,
		VerificationMethod: pass.Redemption.VerificationMethod,
		VerificationCode:   pass.VerificationCode,
		StatusHistory:      string(history),
		CreatedAt:          pass.CreatedAt,
		UpdatedAt:          pass.UpdatedAt,
	}
}

func ToDomainVenuePassType(model *models.VenuePassTypeModel) *domain.VenuePassType {
	var restrictions []string
	if model.Restrictions != "" {
		_ = json.Unmarshal([]byte(model.Restrictions), &restrictions)
	}

	return &domain.VenuePassType{
		ID:           model.ID,
		VenueID:      model.VenueID,
		Type:         model.Type,
		Price:        model.Price,
		ServiceFee:   model.ServiceFee,
		Enabled:      model.Enabled,
		Inventory:    model.Inventory,
		Restrictions: restrictions,
	}
}
