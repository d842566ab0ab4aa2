package multisigservice

import (
	"log/slog"

	httpadapter "themis/contexts/governance/multisig-service/adapters/http"
	"themis/contexts/governance/multisig-service/adapters/memory"
	"themis/contexts/governance/multisig-service/application/commands"
	"themis/contexts/governance/multisig-service/application/queries"
	"themis/contexts/governance/multisig-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Accounts    ports.AccountRepository
	Permissions ports.PermissionOracle
	Pause       ports.PauseGuard
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	accountUseCase := commands.AccountUseCase{
		Accounts:    deps.Accounts,
		Permissions: deps.Permissions,
		Pause:       deps.Pause,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	accountQueries := queries.AccountQueries{
		Accounts:    deps.Accounts,
		Permissions: deps.Permissions,
	}
	return Module{
		Handler: httpadapter.Handler{
			Accounts: accountUseCase,
			Queries:  accountQueries,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store; the
// permission oracle and pause guard still come from the caller because they
// belong to a sibling context.
func NewInMemoryModule(permissions ports.PermissionOracle, pause ports.PauseGuard, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Accounts:    store,
		Permissions: permissions,
		Pause:       pause,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
