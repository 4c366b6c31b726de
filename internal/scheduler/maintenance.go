// Package scheduler triggers periodic background work.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/orgauth/internal/tasks"
)

// Enqueuer persists a task for the worker pool.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// MaintenanceScheduler enqueues the database maintenance task on a cron schedule.
type MaintenanceScheduler struct {
	queue    Enqueuer
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewMaintenanceScheduler(queue Enqueuer, schedule string) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the job and starts the cron loop. An empty schedule
// disables the scheduler. Cancelling ctx stops it.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("[MAINTENANCE] Scheduler disabled")
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue("schedule")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRun(s.schedule, time.Now())
	log.Printf("[MAINTENANCE] Scheduler started (%s). Next run: %v", DescribeSchedule(s.schedule), next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and stops the cron loop.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("[MAINTENANCE] Scheduler stopped")
}

// RunNow enqueues a maintenance run immediately and returns its task id.
func (s *MaintenanceScheduler) RunNow() (string, error) {
	return s.enqueue("manual")
}

func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the job fires next, or nil when stopped.
func (s *MaintenanceScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

func (s *MaintenanceScheduler) enqueue(trigger string) (string, error) {
	id, err := s.queue.Enqueue(tasks.MaintainDatabaseTask{Trigger: trigger})
	if err != nil {
		log.Printf("[MAINTENANCE] Failed to enqueue %s run: %v", trigger, err)
		return "", err
	}
	log.Printf("[MAINTENANCE] Enqueued %s run as task %s", trigger, id)
	return id, nil
}
