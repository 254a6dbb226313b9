// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/canonical/aap-sync-service/internal/logging"
)

// Scheduler triggers full syncs on a cron schedule. Overlapping runs are
// skipped rather than queued, a sync still in flight when the next tick
// fires wins.
type Scheduler struct {
	cron     *cron.Cron
	service  ServiceInterface
	schedule string
	running  atomic.Bool

	logger logging.LoggerInterface
}

func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("no sync schedule configured, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.tick)
	if err != nil {
		s.logger.Errorf("invalid sync schedule %q: %v", s.schedule, err)
		return err
	}

	s.cron.Start()
	s.logger.Infof("sync scheduler started with schedule %q", s.schedule)

	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("sync scheduler stopped")
}

func (s *Scheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("previous sync still running, skipping scheduled run")
		return
	}
	defer s.running.Store(false)

	if _, err := s.service.FullSync(context.Background()); err != nil {
		s.logger.Errorf("scheduled sync failed: %v", err)
	}
}

func NewScheduler(service ServiceInterface, schedule string, logger logging.LoggerInterface) *Scheduler {
	s := new(Scheduler)

	s.cron = cron.New()
	s.service = service
	s.schedule = schedule
	s.logger = logger

	return s
}
