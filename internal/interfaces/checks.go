package interfaces

// Compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/database/identity"
	"github.com/mrlokans/orgauth/internal/http"
	"github.com/mrlokans/orgauth/internal/metrics"
	"github.com/mrlokans/orgauth/internal/scheduler"
	"github.com/mrlokans/orgauth/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ auth.IdentityStore = (*identity.Store)(nil)
var _ tasks.DatabaseMaintainer = (*database.Database)(nil)

// =============================================================================
// Authentication
// =============================================================================

var _ auth.Resolver = (*auth.Service)(nil)
var _ http.AccountService = (*auth.Service)(nil)
var _ http.UserDirectory = (*auth.Service)(nil)
var _ http.OrganisationService = (*auth.Service)(nil)

// =============================================================================
// Observability
// =============================================================================

var _ auth.AuthOutcomeRecorder = (*metrics.Metrics)(nil)
var _ tasks.EnqueueObserver = (*metrics.Metrics)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.MaintenanceTrigger = (*scheduler.MaintenanceScheduler)(nil)
