package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brindez/controle-brindes/internal/application/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store agrupa o pool e entrega repositórios fora ou dentro de transação.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constrói o Store com o pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Items repositório de brindes fora de transação.
func (s *Store) Items() repository.ItemRepository { return NewItemRepository(s.pool, false) }

// Movements repositório do livro fora de transação.
func (s *Store) Movements() repository.MovementRepository { return NewMovementRepository(s.pool) }

// Branches repositório de filiais.
func (s *Store) Branches() repository.BranchRepository { return NewBranchRepository(s.pool) }

// Catalog repositório de categorias e unidades.
func (s *Store) Catalog() repository.CatalogRepository { return NewCatalogRepository(s.pool) }

// Suppliers repositório de fornecedores.
func (s *Store) Suppliers() repository.SupplierRepository { return NewSupplierRepository(s.pool) }

// Users repositório de usuários.
func (s *Store) Users() repository.UserRepository { return NewUserRepository(s.pool) }

// Audit repositório de auditoria.
func (s *Store) Audit() repository.AuditRepository { return NewAuditRepository(s.pool) }

// Run inicia uma transação, executa fn com repositórios atados à tx e faz Commit ou Rollback.
// Dentro da tx, GetByID de brindes bloqueia a linha (SELECT ... FOR UPDATE).
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx, true), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
