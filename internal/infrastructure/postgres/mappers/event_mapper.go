package mappers

import (
	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/models"
)

func ToDomainEvent(model *models.LifecycleEventModel) *domain.LifecycleEvent {
	event := &domain.LifecycleEvent{
		ID:               model.ID,
		OrderID:          model.OrderID,
		VenueID:          model.VenueID,
		EventType:        model.EventType,
		Timestamp:        model.Timestamp,
		ProcessingTimeMs: model.ProcessingTimeMs,
		ItemSnapshot:     model.ItemSnapshot,
		VerifiedBy:       model.VerifiedBy,
	}
	if model.HasRevenue {
		event.Revenue = &domain.Revenue{
			Subtotal:   model.Subtotal,
			ServiceFee: model.ServiceFee,
			Tip:        model.Tip,
			Total:      model.Total,
		}
	}
	if model.HasVerification {
		event.Verification = &domain.VerificationMeta{
			Method:       model.Method,
			VerifierRole: model.VerifierRole,
			AttemptCount: model.AttemptCount,
			Success:      model.Success,
		}
	}
	return event
}

func ToGORMEvent(event *domain.LifecycleEvent) *models.LifecycleEventModel {
	model := &models.LifecycleEventModel{
		ID:               event.ID,
		OrderID:          event.OrderID,
		VenueID:          event.VenueID,
		EventType:        event.EventType,
		Timestamp:        event.Timestamp,
		ProcessingTimeMs: event.ProcessingTimeMs,
		ItemSnapshot:     event.ItemSnapshot,
		VerifiedBy:       event.VerifiedBy,
	}
	if event.Revenue != nil {
		model.HasRevenue = true
		model.Subtotal = event.Revenue.Subtotal
		model.ServiceFee = event.Revenue.ServiceFee
		model.Tip = event.Revenue.Tip
		model.Total = event.Revenue.Total
	}
	if event.Verification != nil {
		model.HasVerification = true
		model.Method = event.Verification.Method
		model.VerifierRole = event.Verification.VerifierRole
		model.AttemptCount = event.Verification.AttemptCount
		model.Success = event.Verification.Success
	}
	return model
}
