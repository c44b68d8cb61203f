// Package storage escolhe, uma única vez na inicialização, o backend de dados
// configurado e expõe seus repositórios atrás das portas do domínio.
package storage

import (
	"context"
	"fmt"

	"github.com/brindez/controle-brindes/internal/application/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/internal/infrastructure/memory"
	"github.com/brindez/controle-brindes/internal/infrastructure/postgres"
	"github.com/brindez/controle-brindes/internal/infrastructure/sqlite"
	"github.com/brindez/controle-brindes/pkg/config"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// Backend conjunto de repositórios de um driver.
type Backend struct {
	Driver    string
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Branches  repository.BranchRepository
	Catalog   repository.CatalogRepository
	Suppliers repository.SupplierRepository
	Users     repository.UserRepository
	Audit     repository.AuditRepository
	TxRunner  inventory.TxRunner

	closer func() error
}

// Close libera a conexão ou grava o arquivo do backend em memória.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// Provider o que cada driver oferece.
type Provider interface {
	inventory.TxRunner
	Items() repository.ItemRepository
	Movements() repository.MovementRepository
	Branches() repository.BranchRepository
	Catalog() repository.CatalogRepository
	Suppliers() repository.SupplierRepository
	Users() repository.UserRepository
	Audit() repository.AuditRepository
}

// Open constrói o backend indicado em cfg.Storage.Driver e carrega os dados padrão se estiver vazio.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	var (
		p      Provider
		closer func() error
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		st, err := memory.Open(cfg.Storage.MockDataPath)
		if err != nil {
			return nil, err
		}
		p, closer = st, st.Close
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		p, closer = db, db.Close
	case config.DriverPostgres:
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		p = postgres.NewStore(pool)
		closer = func() error {
			pool.Close()
			return nil
		}
	default:
		return nil, fmt.Errorf("storage: driver desconhecido %q", cfg.Storage.Driver)
	}

	b := FromProvider(cfg.Storage.Driver, p, closer)
	if err := Seed(ctx, b.Branches, b.Catalog); err != nil {
		_ = b.Close()
		return nil, err
	}
	if err := SeedDirectory(ctx, b.Suppliers, b.Users); err != nil {
		_ = b.Close()
		return nil, err
	}
	log.Debug().Str("driver", b.Driver).Msg("armazenamento pronto")
	return b, nil
}

// FromProvider monta um Backend a partir de um driver já aberto.
func FromProvider(driver string, p Provider, closer func() error) *Backend {
	return &Backend{
		Driver:    driver,
		Items:     p.Items(),
		Movements: p.Movements(),
		Branches:  p.Branches(),
		Catalog:   p.Catalog(),
		Suppliers: p.Suppliers(),
		Users:     p.Users(),
		Audit:     p.Audit(),
		TxRunner:  p,
		closer:    closer,
	}
}
