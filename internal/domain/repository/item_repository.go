package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// ItemFilter filtros para listagem de brindes. Campos vazios não filtram.
type ItemFilter struct {
	Branch   string
	Category string
	Unit     string
	Search   string // trecho da descrição ou do código, sem diferenciar maiúsculas
}

// ItemRepository define a porta de persistência para Item (DIP).
// GetByID e Find* devolvem (nil, nil) quando o registro não existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// Update substitui apenas os campos descritivos; Quantity é ignorada.
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	FindByKeyAndBranch(ctx context.Context, descriptionKey, branch string) (*entity.Item, error)
	FindByLogicalIDAndBranch(ctx context.Context, logicalID, branch string) (*entity.Item, error)
	// ListCodes devolve todos os códigos existentes (para gerar o próximo sequencial).
	ListCodes(ctx context.Context) ([]string, error)
	// AdjustQuantity aplica delta de forma condicional: só altera se quantidade+delta >= 0.
	// Devolve false (sem erro) quando a condição não foi satisfeita ou o item não existe.
	AdjustQuantity(ctx context.Context, id string, delta int64) (bool, error)
}
