package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/config"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/database/identity"
	http_controllers "github.com/mrlokans/orgauth/internal/http"
	"github.com/mrlokans/orgauth/internal/metrics"
	"github.com/mrlokans/orgauth/internal/scheduler"
	"github.com/mrlokans/orgauth/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired application and the resources it owns.
type App struct {
	Router    *gin.Engine
	DB        *database.Database
	Tasks     *tasks.Client
	Scheduler *scheduler.MaintenanceScheduler

	cancel context.CancelFunc
}

// resolveAuthConfig fills in a random secret when none is configured.
// Tokens then do not survive a restart.
func resolveAuthConfig(cfg config.Auth) (config.Auth, error) {
	if cfg.SecretKey != "" {
		return cfg, nil
	}
	secret, err := auth.GenerateSecretKey()
	if err != nil {
		return cfg, fmt.Errorf("failed to generate secret key: %w", err)
	}
	log.Printf("WARNING: SECRET_KEY is not set. Generated a random key; issued tokens will be invalid after restart.")
	cfg.SecretKey = secret
	return cfg, nil
}

// NewApp opens the database and wires every component. Background work is
// not started until Start is called.
func NewApp(cfg *config.Config, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	authCfg, err := resolveAuthConfig(cfg.Auth)
	if err != nil {
		db.Close()
		return nil, err
	}
	tokens, err := auth.NewTokenService(authCfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher := auth.NewHasher(authCfg.BcryptCost)
	authService := auth.NewService(identity.NewStore(db.DB), hasher, tokens)
	log.Printf("Authentication: %s tokens valid for %v, bcrypt cost %d", authCfg.Algorithm, tokens.TTL(), hasher.Cost())

	var m *metrics.Metrics
	var recorder auth.AuthOutcomeRecorder
	var taskObserver tasks.EnqueueObserver
	if cfg.Metrics.Enabled {
		m = metrics.New()
		recorder = m
		taskObserver = m
	}

	app := &App{DB: db}

	routerCfg := http_controllers.RouterConfig{
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService, recorder),
		Database:       db,
		Metrics:        m,
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		ReadOnly:       cfg.Global.ReadOnlyMode,
		ProjectName:    cfg.ProjectName,
		Version:        version,
	}

	if cfg.Tasks.Enabled {
		app.Tasks, err = tasks.NewClient(cfg.Database.Path, tasks.FromSettings(cfg.Tasks), taskObserver)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks.Register(tasks.NewMaintainDatabaseQueue(db))
		app.Scheduler = scheduler.NewMaintenanceScheduler(app.Tasks, cfg.Maintenance.Schedule)

		routerCfg.TaskQueue = app.Tasks
		routerCfg.Maintenance = app.Scheduler
	}

	if cfg.Global.ReadOnlyMode {
		log.Printf("WARNING: read-only mode is enabled, writes will be refused")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Start launches the task workers and the maintenance scheduler.
func (a *App) Start(ctx context.Context) error {
	if a.Tasks == nil {
		return nil
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.Tasks.Start(ctx)
	if err := a.Scheduler.Start(ctx); err != nil {
		a.cancel()
		return err
	}
	return nil
}

// Shutdown stops background work and closes the databases.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop taking requests before background work is torn down
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting %s v%s", cfg.ProjectName, version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Start(context.Background()); err != nil {
		app.Shutdown(context.Background())
		log.Fatalf("Failed to start background work: %v", err)
	}

	Serve(app.Router, cfg, app.Shutdown)
}
