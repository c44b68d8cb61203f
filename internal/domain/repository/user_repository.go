package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// UserRepository define a porta de persistência para o cadastro de usuários (DIP).
type UserRepository interface {
	// Create devolve domain.ErrDuplicate se o username já existir.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername devolve nil, nil quando não existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List ordena pelo username.
	List(ctx context.Context, activeOnly bool) ([]*entity.User, error)
	// CountByBranch quantos usuários estão lotados na filial (nome sem diferenciar caixa).
	CountByBranch(ctx context.Context, branch string) (int, error)
	Update(ctx context.Context, user *entity.User) error
}
