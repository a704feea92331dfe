package background

import (
	"context"
	"log"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/usecase"
)

type BackgroundTasks struct {
	PassUsecase usecase.PassUsecase
	SweepEvery  time.Duration
}

func NewBackgroundTasks(passUC usecase.PassUsecase, sweepEvery time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		PassUsecase: passUC,
		SweepEvery:  sweepEvery,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startExpirySweep(ctx)
}

// startExpirySweep periodically marks overdue active passes expired.
// The sweep never blocks foreground redemptions: every write it issues
// is conditional on the pass still being active.
func (bt *BackgroundTasks) startExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.PassUsecase.ExpireOverduePasses(ctx); err != nil {
				log.Printf("Expiry sweep error: %v\n", err)
			}
		}
	}
}
