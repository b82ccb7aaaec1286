// Package scheduler runs the off-peak cache warmer.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Warmer refreshes slow-moving league tables ahead of demand.
type Warmer interface {
	WarmLeagueTables(ctx context.Context)
}

// Orchestrator owns the cron schedule for background refreshes.
type Orchestrator struct {
	cron   *cron.Cron
	warmer Warmer
	log    *logrus.Logger
}

// New creates an orchestrator around the given warmer.
func New(warmer Warmer, log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.New()
	}
	return &Orchestrator{
		cron:   cron.New(),
		warmer: warmer,
		log:    log,
	}
}

// Start registers the warm job on the given cron expression and begins the
// schedule. An invalid expression is returned, not ignored.
func (o *Orchestrator) Start(spec string) error {
	_, err := o.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		o.log.WithField("component", "scheduler").Info("Running league table warm")
		o.warmer.WarmLeagueTables(ctx)
	})
	if err != nil {
		return err
	}

	o.cron.Start()
	o.log.WithFields(logrus.Fields{
		"component": "scheduler",
		"schedule":  spec,
	}).Info("Cache warmer scheduled")
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (o *Orchestrator) Stop() {
	ctx := o.cron.Stop()
	<-ctx.Done()
}
