package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/kafka"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/metrics"
	"github.com/Dompi123/fomo-pr-sub002/internal/roles"
	passdto "github.com/Dompi123/fomo-pr-sub002/internal/usecase/dto/pass"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const (
	verificationCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	verificationCodeLength   = 8

	expirySweeperActor   = "system:expiry-sweep"
	expirySweepBatchSize = 500
)

type PassUsecase interface {
	PurchasePass(input *passdto.PurchasePassInput) (*domain.Pass, error)
	ValidatePass(input *passdto.ValidatePassInput) (*domain.Pass, error)
	RedeemPass(passID string) (*domain.Pass, error)
	VerifyPass(input *passdto.VerifyPassInput) (*domain.Pass, error)
	CheckAvailability(venueID, passType string) (*passdto.AvailabilityOutput, error)
	ExpireOverduePasses(ctx context.Context) error
}

// DefaultPassUsecase owns the pass state machine:
// active -> redeemed | expired, both terminal. The redemption step is a
// single conditional write in the repository, so concurrent verifiers
// race against the store and exactly one wins.
type DefaultPassUsecase struct {
	PassRepo     domain.PassRepository
	PassTypeRepo domain.VenuePassTypeRepository
	Recorder     EventRecorder
	Resolver     *roles.Resolver
	Publisher    domain.PublisherPort
	Metrics      *metrics.PassMetrics

	ValidityWindow    time.Duration
	VerifierRole      string
	VenueUpdatesTopic string
}

func NewDefaultPassUsecase(
	passRepo domain.PassRepository,
	passTypeRepo domain.VenuePassTypeRepository,
	recorder EventRecorder,
	resolver *roles.Resolver,
	publisher domain.PublisherPort,
	passMetrics *metrics.PassMetrics,
	validityWindow time.Duration,
	verifierRole string,
	venueUpdatesTopic string) *DefaultPassUsecase {

	return &DefaultPassUsecase{
		PassRepo:          passRepo,
		PassTypeRepo:      passTypeRepo,
		Recorder:          recorder,
		Resolver:          resolver,
		Publisher:         publisher,
		Metrics:           passMetrics,
		ValidityWindow:    validityWindow,
		VerifierRole:      verifierRole,
		VenueUpdatesTopic: venueUpdatesTopic,
	}
}

func (uc *DefaultPassUsecase) PurchasePass(input *passdto.PurchasePassInput) (*domain.Pass, error) {
	if input.ActorID == "" || input.VenueID == "" || input.Type == "" {
		return nil, fmt.Errorf("%w: actor, venue and pass type are required", domain.ErrInvalidInput)
	}
	if input.Price < 0 || input.Tip < 0 {
		return nil, fmt.Errorf("%w: negative amount", domain.ErrInvalidInput)
	}

	passType, err := uc.PassTypeRepo.GetVenuePassType(input.VenueID, input.Type)
	if err != nil {
		return nil, err
	}
	if !passType.IsAvailable() {
		return nil, fmt.Errorf("%w: %s at venue %s", domain.ErrPassTypeUnavailable, input.Type, input.VenueID)
	}

	codeGenerator, err := nanoid.CustomASCII(verificationCodeAlphabet, verificationCodeLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pass := &domain.Pass{
		ID:               uuid.New().String(),
		VenueID:          input.VenueID,
		UserID:           input.ActorID,
		Type:             input.Type,
		PurchasePrice:    input.Price,
		PurchaseDate:     now,
		ExpiryDate:       now.Add(uc.ValidityWindow),
		Status:           domain.StatusActive,
		VerificationCode: codeGenerator(),
		StatusHistory: []domain.StatusChange{
			{Status: domain.StatusActive, Timestamp: now, UpdatedBy: input.ActorID},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.PassRepo.CreatePass(pass); err != nil {
		return nil, fmt.Errorf("create pass: %w", err)
	}

	uc.Metrics.ObservePurchase(pass.VenueID, pass.Type, pass.PurchasePrice)

	revenue := domain.Revenue{
		Subtotal:   input.Price,
		ServiceFee: passType.ServiceFee,
		Tip:        input.Tip,
		Total:      input.Price + passType.ServiceFee + input.Tip,
	}
	if err := uc.Recorder.RecordCreation(pass, revenue); err != nil {
		log.Printf("Failed to record creation event for pass %s: %v\n", pass.ID, err)
	}

	uc.publishVenueUpdate(kafka.VenueEventPassPurchased, pass)

	return pass, nil
}

func (uc *DefaultPassUsecase) ValidatePass(input *passdto.ValidatePassInput) (*domain.Pass, error) {
	pass, err := uc.PassRepo.GetPassByID(input.PassID)
	if err != nil {
		return nil, err
	}
	if pass.VenueID != input.VenueID {
		return nil, fmt.Errorf("%w: pass %s, venue %s", domain.ErrWrongVenue, pass.ID, input.VenueID)
	}

	switch pass.EffectiveStatus(time.Now()) {
	case domain.StatusActive:
		return pass, nil
	case domain.StatusRedeemed:
		return nil, fmt.Errorf("%w: pass %s", domain.ErrAlreadyRedeemed, pass.ID)
	case domain.StatusExpired:
		return nil, fmt.Errorf("%w: pass %s", domain.ErrPassExpired, pass.ID)
	default:
		return nil, fmt.Errorf("%w: pass %s", domain.ErrPassNotActive, pass.ID)
	}
}

// RedeemPass is the bare atomic consumption step. A precondition miss
// surfaces as ErrAlreadyRedeemed and is terminal: the caller must not
// retry, a second attempt is a legitimate already-redeemed outcome.
func (uc *DefaultPassUsecase) RedeemPass(passID string) (*domain.Pass, error) {
	started := time.Now()
	pass, err := uc.PassRepo.RedeemPass(passID, "", "direct", time.Now())
	if err != nil {
		return nil, err
	}
	uc.finishRedemption(pass, pass.Redemption.VerifiedBy, started)
	return pass, nil
}

func (uc *DefaultPassUsecase) VerifyPass(input *passdto.VerifyPassInput) (*domain.Pass, error) {
	started := time.Now()

	pass, err := uc.PassRepo.GetPassByID(input.PassID)
	if err != nil {
		return nil, err
	}

	actor := &domain.Actor{ID: input.ActorID, PrimaryRole: input.ActorRole}
	if !uc.Resolver.HasRole(actor, uc.VerifierRole) {
		uc.recordFailedAttempt(pass, input, "unauthorized", started)
		return nil, fmt.Errorf("%w: role %q cannot verify passes for venue %s", domain.ErrNotAuthorized, input.ActorRole, pass.VenueID)
	}

	if input.VerificationCode != "" && input.VerificationCode != pass.VerificationCode {
		uc.recordFailedAttempt(pass, input, "code_mismatch", started)
		return nil, fmt.Errorf("%w: pass %s", domain.ErrVerificationCode, pass.ID)
	}

	switch pass.EffectiveStatus(time.Now()) {
	case domain.StatusExpired:
		uc.recordFailedAttempt(pass, input, "expired", started)
		return nil, fmt.Errorf("%w: pass %s", domain.ErrPassExpired, pass.ID)
	case domain.StatusRedeemed:
		uc.recordFailedAttempt(pass, input, "already_redeemed", started)
		return nil, fmt.Errorf("%w: pass %s", domain.ErrAlreadyRedeemed, pass.ID)
	}

	method := verificationMethod(input)
	updated, err := uc.PassRepo.RedeemPass(pass.ID, input.ActorID, method, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRedeemed) {
			// Lost the conditional write to a concurrent verifier.
			uc.Metrics.ObserveConflict(pass.VenueID)
			uc.recordFailedAttempt(pass, input, "already_redeemed", started)
		}
		return nil, err
	}

	took := time.Since(started)
	meta := domain.VerificationMeta{Method: method, VerifierRole: input.ActorRole, Success: true}
	if err := uc.Recorder.RecordVerification(updated, meta, input.ActorID, took); err != nil {
		log.Printf("Failed to record verification event for pass %s: %v\n", updated.ID, err)
	}
	uc.Metrics.ObserveVerificationAttempt(pass.VenueID, "success", took.Seconds())

	uc.finishRedemption(updated, input.ActorID, started)
	return updated, nil
}

func (uc *DefaultPassUsecase) CheckAvailability(venueID, passType string) (*passdto.AvailabilityOutput, error) {
	venuePassType, err := uc.PassTypeRepo.GetVenuePassType(venueID, passType)
	if err != nil {
		if errors.Is(err, domain.ErrPassTypeUnavailable) {
			return &passdto.AvailabilityOutput{IsAvailable: false}, nil
		}
		return nil, err
	}

	return &passdto.AvailabilityOutput{
		IsAvailable:  venuePassType.IsAvailable(),
		Price:        venuePassType.Price,
		Restrictions: venuePassType.Restrictions,
	}, nil
}

// ExpireOverduePasses sweeps active passes past their validity window.
// Each write is guarded on status so a pass redeemed mid-sweep is left
// alone.
func (uc *DefaultPassUsecase) ExpireOverduePasses(ctx context.Context) error {
	passes, err := uc.PassRepo.FindExpiredActive(time.Now(), expirySweepBatchSize)
	if err != nil {
		return err
	}

	for _, pass := range passes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		applied, err := uc.PassRepo.MarkExpired(pass.ID, expirySweeperActor, time.Now())
		if err != nil {
			log.Printf("Failed to expire pass %s: %v\n", pass.ID, err)
			continue
		}
		if !applied {
			continue
		}

		uc.Metrics.ObserveExpired(pass.VenueID)
		pass.Status = domain.StatusExpired
		if err := uc.Recorder.RecordStatusChange(pass, domain.StatusActive, domain.StatusExpired, expirySweeperActor); err != nil {
			log.Printf("Failed to record expiry event for pass %s: %v\n", pass.ID, err)
		}
	}

	return nil
}

// finishRedemption handles everything after the conditional write won.
// The ledger append and the venue notification are best-effort: pass
// state is the source of truth and is already committed.
func (uc *DefaultPassUsecase) finishRedemption(pass *domain.Pass, verifiedBy string, started time.Time) {
	revenue := domain.Revenue{Subtotal: pass.PurchasePrice, Total: pass.PurchasePrice}
	if err := uc.Recorder.RecordCompletion(pass, revenue, verifiedBy, time.Since(started)); err != nil {
		log.Printf("Failed to record completion event for pass %s: %v\n", pass.ID, err)
	}
	uc.Metrics.ObserveRedemption(pass.VenueID, pass.Redemption.VerificationMethod)
	uc.publishVenueUpdate(kafka.VenueEventPassRedeemed, pass)
}

func (uc *DefaultPassUsecase) recordFailedAttempt(pass *domain.Pass, input *passdto.VerifyPassInput, reason string, started time.Time) {
	took := time.Since(started)
	meta := domain.VerificationMeta{Method: verificationMethod(input), VerifierRole: input.ActorRole, Success: false}
	if err := uc.Recorder.RecordVerification(pass, meta, input.ActorID, took); err != nil {
		log.Printf("Failed to record verification attempt for pass %s: %v\n", pass.ID, err)
	}
	uc.Metrics.ObserveVerificationAttempt(pass.VenueID, reason, took.Seconds())
}

func (uc *DefaultPassUsecase) publishVenueUpdate(eventType string, pass *domain.Pass) {
	if uc.Publisher == nil {
		return
	}

	msg, err := kafka.MarshalVenueUpdate(kafka.VenueUpdateEvent{
		EventType: eventType,
		PassID:    pass.ID,
		VenueID:   pass.VenueID,
		UserID:    pass.UserID,
		PassType:  pass.Type,
		Price:     pass.PurchasePrice,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.Error("venue update marshal failed", "pass_id", pass.ID, "error", err.Error())
		return
	}
	if err := uc.Publisher.Publish(uc.VenueUpdatesTopic, msg); err != nil {
		slog.Error("venue update publish failed", "pass_id", pass.ID, "error", err.Error())
	}
}

func verificationMethod(input *passdto.VerifyPassInput) string {
	if input.VerificationCode != "" {
		return "code"
	}
	return "manual"
}
