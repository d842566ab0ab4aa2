package accesscontrolservice

import (
	"log/slog"

	httpadapter "themis/contexts/identity-access/access-control-service/adapters/http"
	"themis/contexts/identity-access/access-control-service/adapters/memory"
	"themis/contexts/identity-access/access-control-service/application/commands"
	"themis/contexts/identity-access/access-control-service/application/queries"
	"themis/contexts/identity-access/access-control-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Queries queries.AccessQueries
	Store   *memory.Store
}

type Dependencies struct {
	Grants ports.GrantRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	accessUseCase := commands.AccessUseCase{
		Grants: deps.Grants,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	accessQueries := queries.AccessQueries{
		Grants: deps.Grants,
	}
	return Module{
		Handler: httpadapter.Handler{
			Access:  accessUseCase,
			Queries: accessQueries,
			Logger:  deps.Logger,
		},
		Queries: accessQueries,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Grants: store,
		Outbox: store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
