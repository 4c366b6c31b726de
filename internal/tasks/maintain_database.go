package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/orgauth/internal/database"
)

// MaintainDatabaseQueue is the queue name of the maintenance task.
const MaintainDatabaseQueue = "maintain_database"

var errMaintainerNotConfigured = errors.New("database maintainer not configured")

// DatabaseMaintainer is the part of the main database the maintenance task needs.
type DatabaseMaintainer interface {
	Optimize(ctx context.Context) error
	Counts(ctx context.Context) (database.Counts, error)
}

// MaintainDatabaseTask refreshes query planner statistics and reports table sizes.
type MaintainDatabaseTask struct {
	// Trigger records who asked for the run: "schedule" or "manual".
	Trigger string `json:"trigger"`
}

func (t MaintainDatabaseTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        MaintainDatabaseQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// MaintainDatabaseProcessor runs PRAGMA optimize and logs row counts.
func MaintainDatabaseProcessor(db DatabaseMaintainer) backlite.QueueProcessor[MaintainDatabaseTask] {
	return func(ctx context.Context, task MaintainDatabaseTask) error {
		if db == nil {
			return errMaintainerNotConfigured
		}

		started := time.Now()
		if err := db.Optimize(ctx); err != nil {
			return fmt.Errorf("optimize database: %w", err)
		}

		counts, err := db.Counts(ctx)
		if err != nil {
			return fmt.Errorf("count rows: %w", err)
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = "manual"
		}
		log.Printf("[TASK] Database maintenance (%s) finished in %v: %d users, %d organisations, %d memberships",
			trigger, time.Since(started).Round(time.Millisecond), counts.Users, counts.Organisations, counts.Memberships)
		return nil
	}
}

func NewMaintainDatabaseQueue(db DatabaseMaintainer) backlite.Queue {
	return backlite.NewQueue(MaintainDatabaseProcessor(db))
}
