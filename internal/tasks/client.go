package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// ErrNoTaskID is returned when the queue accepted a task without reporting its id.
var ErrNoTaskID = errors.New("task queue returned no task id")

// EnqueueObserver is notified of every Enqueue call.
type EnqueueObserver interface {
	ObserveTaskEnqueued(task string, err error)
}

// Client runs backlite on its own SQLite database next to the main one.
type Client struct {
	client   *backlite.Client
	db       *sql.DB
	config   Config
	observer EnqueueObserver

	mu      sync.RWMutex
	started bool
}

// TasksDatabasePath derives the queue database location from the main
// database path: "data/orgauth.db" becomes "data/orgauth-tasks.db". An
// in-memory main database gets an in-memory queue.
func TasksDatabasePath(mainDBPath string) string {
	if mainDBPath == "" || strings.HasPrefix(mainDBPath, ":memory:") {
		return "file:orgauth-tasks?mode=memory&cache=shared"
	}
	dir := filepath.Dir(mainDBPath)
	base := filepath.Base(mainDBPath)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+"-tasks"+ext)
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_journal=WAL&_timeout=5000&_busy_timeout=5000"
}

// NewClient opens the queue database and installs the backlite schema.
// observer may be nil.
func NewClient(mainDBPath string, cfg Config, observer EnqueueObserver) (*Client, error) {
	db, err := sql.Open("sqlite3", dsn(TasksDatabasePath(mainDBPath)))
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &queueLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install backlite schema: %w", err)
	}

	return &Client{
		client:   client,
		db:       db,
		config:   cfg,
		observer: observer,
	}, nil
}

// Register adds queues to the client. Must be called before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start begins processing tasks. It does not block.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	log.Printf("[TASK] Queue started with %d workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks to finish. Returns false when ctx expired first.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return true
	}

	ok := c.client.Stop(ctx)
	c.started = false
	if ok {
		log.Println("[TASK] Queue stopped")
	} else {
		log.Println("[TASK] Queue stopped before all tasks completed")
	}
	return ok
}

// Close releases the queue database. Call after Stop.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Enqueue persists a single task and returns its id.
func (c *Client) Enqueue(task backlite.Task) (string, error) {
	ids, err := c.client.Add(task).Save()
	if err == nil && len(ids) == 0 {
		err = ErrNoTaskID
	}
	if c.observer != nil {
		c.observer.ObserveTaskEnqueued(task.Config().Name, err)
	}
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", task.Config().Name, err)
	}
	return ids[0], nil
}

// Status returns the status of a task by id.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// StatusName renders a backlite status for API responses.
func StatusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
