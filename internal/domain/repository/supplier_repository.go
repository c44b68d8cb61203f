package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// SupplierFilter filtros da listagem de fornecedores.
type SupplierFilter struct {
	// Search trecho do código, nome ou contato (sem diferenciar caixa).
	Search     string
	ActiveOnly bool
}

// SupplierRepository define a porta de persistência para fornecedores (DIP).
// Códigos são únicos sem diferenciar maiúsculas; Create devolve domain.ErrDuplicate.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	// GetByCode devolve nil, nil quando não existe.
	GetByCode(ctx context.Context, code string) (*entity.Supplier, error)
	// List ordena pelo código.
	List(ctx context.Context, filter SupplierFilter) ([]*entity.Supplier, error)
	ListCodes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
}
