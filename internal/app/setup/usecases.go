package setup

import (
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/usecase"
)

type Usecases struct {
	PassUsecase usecase.PassUsecase
	Recorder    usecase.EventRecorder
}

func InitializeUsecases(deps *Dependencies) *Usecases {
	recorder := usecase.NewDefaultEventRecorder(deps.Repositories.EventRepo)

	passUsecase := usecase.NewDefaultPassUsecase(
		deps.Repositories.PassRepo,
		deps.Repositories.PassTypeRepo,
		recorder,
		deps.Resolver,
		deps.Publisher,
		deps.Metrics,
		time.Duration(deps.Config.PassRules.ValidityWindowHours)*time.Hour,
		deps.Config.PassRules.VerifierRole,
		deps.Config.KafkaService.VenueUpdatesTopic,
	)

	return &Usecases{
		PassUsecase: passUsecase,
		Recorder:    recorder,
	}
}
