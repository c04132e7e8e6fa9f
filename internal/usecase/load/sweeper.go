package load

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/internal/logger"
)

// OfferSweeper periodically closes open offers whose expiry has passed.
// Expiry is lazy: nothing reacts the moment an offer lapses, the sweep
// flips it to expired on the next run.
type OfferSweeper struct {
	offerRepo domainLoad.OfferRepository
	schedule  string
	cron      *cron.Cron
}

func NewOfferSweeper(offerRepo domainLoad.OfferRepository, schedule string) *OfferSweeper {
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &OfferSweeper{
		offerRepo: offerRepo,
		schedule:  schedule,
		cron:      cron.New(),
	}
}

func (s *OfferSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("offer expiry sweeper started",
		zap.String("event", "sweeper_started"),
		zap.String("schedule", s.schedule),
	)
	return nil
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (s *OfferSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *OfferSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.offerRepo.ExpireOpenOffers(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("offer expiry sweep failed",
			zap.String("event", "sweeper_error"),
			zap.Error(err),
		)
		return
	}
	if expired > 0 {
		logger.Info("expired open offers",
			zap.String("event", "offers_expired"),
			zap.Int64("count", expired),
		)
	}
}
