// Package scheduler triggers the household processors on wall clock
// schedules: recurring bills once per day and the income allocation on
// the first day of every month.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthbudget/backend/internal/processor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Schedule is a time of day in the scheduler's location.
type Schedule struct {
	Hour   int
	Minute int
}

// Scheduler runs the processors at their configured times.
type Scheduler struct {
	service  *processor.Service
	location *time.Location
	bills    Schedule
	income   Schedule
}

func New(service *processor.Service, location *time.Location, bills, income Schedule) *Scheduler {
	return &Scheduler{
		service:  service,
		location: location,
		bills:    bills,
		income:   income,
	}
}

var metrics = []prometheus.Collector{
	jobRuns,
}

// RegisterMetrics registers all scheduler metrics
// with the default Prometheus registry.
func RegisterMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterMetrics unregisters all scheduler metrics.
//
// This is needed to cleanly exit.
func UnregisterMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}

var jobRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "How many scheduled processor runs completed, partitioned by job and result.",
	},
	[]string{"job", "result"},
)

// NextDaily returns the first instant after now that matches the
// schedule on any day.
func NextDaily(now time.Time, s Schedule) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, s.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// NextMonthly returns the first instant after now that matches the
// schedule on the first day of a month.
func NextMonthly(now time.Time, s Schedule) time.Time {
	next := time.Date(now.Year(), now.Month(), 1, s.Hour, s.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month()+1, 1, s.Hour, s.Minute, 0, 0, now.Location())
	}

	return next
}

// Run blocks until the context is canceled, firing each job at its
// scheduled time. Both processors are idempotent per period, so a
// failed run is safe to retry on the next firing.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().
		Str("location", s.location.String()).
		Str("bills", fmt.Sprintf("%02d:%02d", s.bills.Hour, s.bills.Minute)).
		Str("income", fmt.Sprintf("%02d:%02d", s.income.Hour, s.income.Minute)).
		Msg("Scheduler")

	for {
		now := time.Now().In(s.location)
		nextBills := NextDaily(now, s.bills)
		nextIncome := NextMonthly(now, s.income)

		next := nextBills
		if nextIncome.Before(next) {
			next = nextIncome
		}

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("Scheduler stopped")
			return
		case <-timer.C:
		}

		if next.Equal(nextBills) {
			s.runJob("bills", s.service.ProcessDueBills)
		}
		if next.Equal(nextIncome) {
			s.runJob("income_allocation", s.service.ProcessIncomeAllocation)
		}
	}
}

func (s *Scheduler) runJob(name string, run func() error) {
	log.Info().Str("job", name).Msg("Scheduler run")

	if err := run(); err != nil {
		jobRuns.WithLabelValues(name, "failure").Inc()
		log.Error().Err(err).Str("job", name).Msg("Scheduler run failed")
		return
	}

	jobRuns.WithLabelValues(name, "success").Inc()
}
