package inventory

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação, passando repositórios atados a ela.
// Se fn devolver erro, nada do que foi escrito permanece.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// Enumerations fornece os valores ativos das tabelas de apoio.
type Enumerations interface {
	Categories(ctx context.Context) ([]string, error)
	Units(ctx context.Context) ([]string, error)
	Branches(ctx context.Context) ([]string, error)
}
