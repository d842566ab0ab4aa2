package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	multisigservice "themis/contexts/governance/multisig-service"
	multisigpostgres "themis/contexts/governance/multisig-service/adapters/postgres"
	multisigworkers "themis/contexts/governance/multisig-service/application/workers"
	multisigentities "themis/contexts/governance/multisig-service/domain/entities"
	multisigerrors "themis/contexts/governance/multisig-service/domain/errors"
	multisigports "themis/contexts/governance/multisig-service/ports"
	accesscontrolservice "themis/contexts/identity-access/access-control-service"
	accesspostgres "themis/contexts/identity-access/access-control-service/adapters/postgres"
	accessqueries "themis/contexts/identity-access/access-control-service/application/queries"
	accessworkers "themis/contexts/identity-access/access-control-service/application/workers"
	accessentities "themis/contexts/identity-access/access-control-service/domain/entities"
	"themis/internal/platform/config"
	"themis/internal/platform/db"
	"themis/internal/platform/httpserver"
	"themis/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
// The glue between the governance engine and the access-control service also
// lives here: contexts never import each other directly.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres        *db.Postgres
	governanceRelay *multisigworkers.OutboxRelay
	accessRelay     *accessworkers.OutboxRelay
	pollInterval    time.Duration
	logger          *slog.Logger
}

// accessOracle satisfies the governance permission-oracle port by delegating
// to access-control queries.
type accessOracle struct {
	queries accessqueries.AccessQueries
}

func (o accessOracle) HasPermission(
	ctx context.Context,
	accountID string,
	member multisigentities.Address,
	role multisigentities.Role,
) (bool, error) {
	return o.queries.HasPermission(ctx, accountID, string(member), accessentities.Role(role))
}

// accessPauseGuard satisfies the governance pause-guard port. A paused account
// surfaces as the governance domain paused error so command flows stay uniform.
type accessPauseGuard struct {
	queries accessqueries.AccessQueries
}

func (g accessPauseGuard) AssertNotPaused(ctx context.Context, accountID string) error {
	paused, err := g.queries.IsPaused(ctx, accountID)
	if err != nil {
		return err
	}
	if paused {
		return multisigerrors.ErrAccountPaused
	}
	return nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	accessRepo := accesspostgres.NewRepository(pg.DB, logger)
	accessModule := accesscontrolservice.NewModule(accesscontrolservice.Dependencies{
		Grants: accessRepo,
		Outbox: accessRepo,
		Clock:  accesspostgres.SystemClock{},
		IDGen:  accesspostgres.UUIDGenerator{},
		Logger: logger,
	})

	multisigRepo := multisigpostgres.NewRepository(pg.DB, logger)
	multisigModule := multisigservice.NewModule(multisigservice.Dependencies{
		Accounts:    multisigRepo,
		Permissions: accessOracle{queries: accessModule.Queries},
		Pause:       accessPauseGuard{queries: accessModule.Queries},
		Outbox:      multisigRepo,
		Clock:       multisigpostgres.SystemClock{},
		IDGen:       multisigpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(multisigModule, accessModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// BuildInMemoryModules wires both modules against in-memory stores. Used by
// local runs and tests that need the full cross-context composition without
// postgres.
func BuildInMemoryModules(logger *slog.Logger) (multisigservice.Module, accesscontrolservice.Module) {
	accessModule := accesscontrolservice.NewInMemoryModule(logger)
	multisigModule := multisigservice.NewInMemoryModule(
		accessOracle{queries: accessModule.Queries},
		accessPauseGuard{queries: accessModule.Queries},
		logger,
	)
	return multisigModule, accessModule
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	app := &WorkerApp{
		postgres:     pg,
		pollInterval: cfg.OutboxRelayInterval,
		logger:       logger,
	}
	if cfg.EnableGovernanceRelay {
		repo := multisigpostgres.NewRepository(pg.DB, logger)
		app.governanceRelay = &multisigworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     multisigpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		}
	}
	if cfg.EnableAccessRelay {
		repo := accesspostgres.NewRepository(pg.DB, logger)
		app.accessRelay = &accessworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     accesspostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		}
	}
	return app, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.governanceRelay != nil {
			if err := w.governanceRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.accessRelay != nil {
			if err := w.accessRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

var _ multisigports.PermissionOracle = accessOracle{}
var _ multisigports.PauseGuard = accessPauseGuard{}
