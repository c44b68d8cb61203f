package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// BranchRepository define a porta de persistência para filiais (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByName(ctx context.Context, name string) (*entity.Branch, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Branch, error)
	// Update devolve domain.ErrDuplicate se o novo nome ou número pertencer a outra filial.
	Update(ctx context.Context, branch *entity.Branch) error
}
