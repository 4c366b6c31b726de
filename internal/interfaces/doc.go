// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access
//
//   - IdentityStore: users, organisations and memberships as seen by the
//     auth core (internal/auth/store.go). Implemented by identity.Store over gorm.
//   - DatabaseMaintainer: PRAGMA optimize and row counts for the maintenance
//     task (internal/tasks/maintain_database.go). Implemented by database.Database.
//
// ## Authentication
//
//   - Resolver: bearer token to principal (internal/auth/middleware.go).
//   - AccountService, UserDirectory, OrganisationService: the slices of
//     auth.Service each HTTP controller depends on (internal/http/stores.go).
//
// ## Observability
//
//   - AuthOutcomeRecorder: counts bearer resolution outcomes.
//   - EnqueueObserver: counts background task submissions.
//
// Both are implemented by metrics.Metrics and are optional (nil disables them).
//
// ## Background Work
//
//   - Enqueuer: persists a task for the worker pool (internal/scheduler).
//   - TaskQueue, MaintenanceTrigger: task status and manual runs over HTTP.
//
// # Adding a New Background Task
//
//  1. Define a task struct with a Config() backlite.QueueConfig method in internal/tasks.
//  2. Write a processor constructor taking the narrow interface it needs.
//  3. Register the queue in entrypoint.NewApp.
//  4. Add a compile-time check in checks.go if a new interface is introduced.
package interfaces
