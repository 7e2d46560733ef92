package jobs

import (
	"fmt"
	"time"

	"cobranzas-backend/billing"
	"cobranzas-backend/config"
	"cobranzas-backend/database"

	"github.com/robfig/cron/v3"
)

// AlertRunner runs the daily alert sweeps on a schedule.
type AlertRunner struct {
	cronScheduler  *cron.Cron
	schedule       string
	runImmediately bool
	jobID          cron.EntryID
}

// NewAlertRunner creates a runner with the given cron schedule
// (e.g. "0 8 * * *" = 08:00 every day).
func NewAlertRunner(schedule string, runImmediately bool) *AlertRunner {
	return &AlertRunner{
		cronScheduler:  cron.New(),
		schedule:       schedule,
		runImmediately: runImmediately,
	}
}

// Start schedules the sweep and begins the cron loop.
func (r *AlertRunner) Start() error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc(r.schedule, func() {
		r.RunNow()
	})
	if err != nil {
		return fmt.Errorf("error scheduling alert sweep: %w", err)
	}

	r.cronScheduler.Start()
	config.GetLogger().Infof("alert sweep scheduled: %s", r.schedule)

	if r.runImmediately {
		r.RunNow()
	}
	return nil
}

// Stop terminates the scheduler.
func (r *AlertRunner) Stop() {
	if r.cronScheduler != nil {
		r.cronScheduler.Stop()
		config.GetLogger().Info("alert sweep scheduler stopped")
	}
}

// RunNow executes one sweep pass outside the schedule.
func (r *AlertRunner) RunNow() {
	log := config.GetLogger()

	cfg, err := billing.LoadAlertConfig(database.DB)
	if err != nil {
		log.Errorf("alert sweep: could not load settings: %v", err)
		return
	}

	res := billing.GenerateAlerts(database.DB, billing.NewDBNotifier(database.DB), cfg, time.Now())
	if !res.Success {
		log.Errorf("alert sweep finished with errors: %s", res.Message)
		return
	}
	log.Infof("alert sweep done: %d generated (first=%d second=%d overdue=%d)",
		res.Generated, res.FirstAlerts, res.SecondAlerts, res.Overdue)
}
