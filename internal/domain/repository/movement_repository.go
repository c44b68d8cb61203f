package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// MovementFilter filtros de listagem do livro. Limit <= 0 = sem limite.
type MovementFilter struct {
	ItemID string
	Type   string
	Limit  int
}

// MovementRepository define a porta de persistência do livro de estoque (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List ordena por data/hora decrescente; empates pela inserção mais recente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	ExistsForItem(ctx context.Context, itemID string) (bool, error)
}
