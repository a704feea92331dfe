package setup

import (
	"fmt"

	"github.com/Dompi123/fomo-pr-sub002/internal/config"
	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/features"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/kafka"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/metrics"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/repository"
	"github.com/Dompi123/fomo-pr-sub002/internal/roles"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.PassConfig
	DB           *gorm.DB
	Publisher    domain.PublisherPort
	Registry     *features.Registry
	Resolver     *roles.Resolver
	Metrics      *metrics.PassMetrics
	Repositories *Repositories
}

type Repositories struct {
	PassRepo     domain.PassRepository
	PassTypeRepo domain.VenuePassTypeRepository
	EventRepo    domain.EventRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewDefaultKafkaPublisher(brokers)

	registry := features.NewRegistry(cfg.Features.Strict)
	seedRegistry(registry, cfg)

	repos := &Repositories{
		PassRepo:     repository.NewDefaultPassRepository(db),
		PassTypeRepo: repository.NewDefaultVenuePassTypeRepository(db),
		EventRepo:    repository.NewDefaultEventRepository(db),
	}

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		Publisher:    publisher,
		Registry:     registry,
		Resolver:     roles.NewResolver(registry),
		Metrics:      metrics.NewPassMetrics(),
		Repositories: repos,
	}, nil
}

// seedRegistry registers every configured flag at boot so the rename
// migration flag exists with its rollout before the first request.
func seedRegistry(registry *features.Registry, cfg *config.PassConfig) {
	for _, flag := range cfg.Features.Flags {
		registry.RegisterFeature(flag.Key, domain.FeatureFlag{
			Enabled:           flag.Enabled,
			RolloutPercentage: flag.RolloutPercentage,
			Description:       flag.Description,
		})
	}
}
