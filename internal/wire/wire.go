// Package wire provides dependency injection for the xfer application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/landxfer/internal/adapters/cli"
	"github.com/example/landxfer/internal/adapters/export"
	"github.com/example/landxfer/internal/adapters/sqlstore"
	"github.com/example/landxfer/internal/app"
	"github.com/example/landxfer/internal/config"
	"github.com/example/landxfer/internal/core/guards"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

var (
	configPath string

	cfg      *config.Config
	logger   *zap.Logger
	database *sql.DB
	store    *sqlstore.Store

	workflowService  primary.WorkflowService
	caseService      primary.CaseService
	clearanceService primary.ClearanceService
	reviewService    primary.ReviewService
	accountsService  primary.AccountsService
	deedService      primary.DeedService
	auditService     primary.AuditService

	once sync.Once
)

// SetConfigPath selects the config file (or directory holding xfer.yaml).
// It must be called before any service is requested.
func SetConfigPath(path string) {
	configPath = path
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Load(".")
	}
	if info, err := os.Stat(configPath); err == nil && info.IsDir() {
		return config.Load(configPath)
	}
	return config.LoadFile(configPath)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error

	cfg, err = loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, "xfer")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// Get database connection; every repository shares this pool
	ctx := context.Background()
	database, err = db.Open(ctx, cfg.Database.Options())
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	dialect := db.DialectFor(cfg.Database.Driver)
	if err := db.InitSchema(ctx, database, dialect); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	store = sqlstore.NewStore(database, dialect)

	// Every edge must resolve to a guard before anything runs
	registry, err := app.NewGuardRegistry(guards.Definitions(), workflow.Edges(), logger)
	if err != nil {
		log.Fatalf("failed to build guard registry: %v", err)
	}

	audit := app.NewAuditWriter()
	executor := app.NewEffectExecutor(audit, logger)

	// Create services (primary ports implementation)
	workflowService = app.NewWorkflowService(store, registry, executor, audit, logger)
	caseService = app.NewCaseService(store, audit, logger)
	clearanceService = app.NewClearanceService(store, audit, logger)
	reviewService = app.NewReviewService(store, workflowService, audit, logger)
	accountsService = app.NewAccountsService(store, workflowService, audit, logger)
	deedService = app.NewDeedService(store, workflowService, audit, logger)
	auditService = app.NewAuditService(store, export.NewAuditXLSXExporter())
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// DB returns the shared connection pool and its dialect.
func DB() (*sql.DB, db.Dialect) {
	once.Do(initServices)
	return database, db.DialectFor(cfg.Database.Driver)
}

// ReferenceData returns the seeded stage and transition tables.
func ReferenceData() secondary.ReferenceDataRepository {
	once.Do(initServices)
	return store.ReferenceData()
}

// Close flushes the logger and closes the pool if they were opened.
func Close() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		if err := database.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// WorkflowAdapter returns a new WorkflowAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func WorkflowAdapter() *cliadapter.WorkflowAdapter {
	return WorkflowAdapterWithOutput(os.Stdout)
}

// WorkflowAdapterWithOutput returns a new WorkflowAdapter writing to the given output.
func WorkflowAdapterWithOutput(out io.Writer) *cliadapter.WorkflowAdapter {
	once.Do(initServices)
	return cliadapter.NewWorkflowAdapter(workflowService, out)
}

// CaseAdapter returns a new CaseAdapter writing to stdout.
func CaseAdapter() *cliadapter.CaseAdapter {
	once.Do(initServices)
	return cliadapter.NewCaseAdapter(caseService, os.Stdout)
}

// ClearanceAdapter returns a new ClearanceAdapter writing to stdout.
func ClearanceAdapter() *cliadapter.ClearanceAdapter {
	once.Do(initServices)
	return cliadapter.NewClearanceAdapter(clearanceService, reviewService, os.Stdout)
}

// AccountsAdapter returns a new AccountsAdapter writing to stdout.
func AccountsAdapter() *cliadapter.AccountsAdapter {
	once.Do(initServices)
	return cliadapter.NewAccountsAdapter(accountsService, os.Stdout)
}

// DeedAdapter returns a new DeedAdapter writing to stdout.
func DeedAdapter() *cliadapter.DeedAdapter {
	once.Do(initServices)
	return cliadapter.NewDeedAdapter(deedService, os.Stdout)
}

// AuditAdapter returns a new AuditAdapter writing to stdout.
func AuditAdapter() *cliadapter.AuditAdapter {
	once.Do(initServices)
	return cliadapter.NewAuditAdapter(auditService, os.Stdout)
}
