package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// CatalogRepository define a porta para as tabelas de apoio (categorias e unidades de medida).
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *entity.Category) error
	ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	// UpdateCategory grava pelo ID; domain.ErrDuplicate se o nome pertencer a outra categoria.
	UpdateCategory(ctx context.Context, category *entity.Category) error
	DeleteCategory(ctx context.Context, name string) error

	CreateUnit(ctx context.Context, unit *entity.Unit) error
	ListUnits(ctx context.Context, activeOnly bool) ([]*entity.Unit, error)
	// UpdateUnit grava pelo ID; domain.ErrDuplicate se o código pertencer a outra unidade.
	UpdateUnit(ctx context.Context, unit *entity.Unit) error
	DeleteUnit(ctx context.Context, code string) error
}
