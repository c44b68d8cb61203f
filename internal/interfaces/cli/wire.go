package cli

import (
	"github.com/brindez/controle-brindes/internal/application/analytics"
	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/inventory"
	"github.com/brindez/controle-brindes/internal/application/usecase"
	"github.com/brindez/controle-brindes/internal/application/validation"
	"github.com/brindez/controle-brindes/internal/infrastructure/cache"
	"github.com/brindez/controle-brindes/internal/infrastructure/storage"
	"github.com/brindez/controle-brindes/pkg/config"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// NewDeps constrói os casos de uso sobre o backend escolhido.
func NewDeps(b *storage.Backend, cfg *config.Config, user string, log, auditLog *logger.Logger) Deps {
	if log == nil {
		log = logger.Nop()
	}
	v := validation.New(cfg.Rules.JustificationMinLength)
	lookups := usecase.NewLookupService(b.Branches, b.Catalog, cache.NewMemo(cfg.Cache.TTL))
	sink := audit.NewSink(b.Audit, log.Named("audit"), auditLog)

	return Deps{
		Items:      usecase.NewItemUseCase(b.TxRunner, b.Items, lookups, v, sink, log),
		Branches:   usecase.NewBranchUseCase(b.Branches, b.Items, b.Users, lookups, v, sink),
		Catalog:    usecase.NewCatalogUseCase(b.Catalog, b.Items, lookups, v, sink),
		Suppliers:  usecase.NewSupplierUseCase(b.Suppliers, v, sink),
		Users:      usecase.NewUserUseCase(b.Users, lookups, v, sink),
		Ledger:     inventory.NewLedgerUseCase(b.TxRunner, b.Movements, v, sink, log),
		Allocation: inventory.NewAllocationUseCase(b.TxRunner, lookups, v, sink, log),
		Transfer:   inventory.NewTransferUseCase(b.TxRunner, lookups, v, sink, log),
		Dashboard:  analytics.NewDashboardUseCase(b.Items, b.Catalog, cfg.Rules.StockMinimum),
		Audit:      sink,
		User:       user,
		Log:        log,
	}
}
