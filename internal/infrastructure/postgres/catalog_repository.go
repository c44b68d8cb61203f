package postgres

import (
	"context"
	"fmt"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo categorias e unidades de medida sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository constrói o adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// CreateCategory insere a categoria; nomes são únicos sem diferenciar maiúsculas.
func (r *CatalogRepo) CreateCategory(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categorias (id, nome, descricao, ativo, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.Active, c.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("create category: %w", translate(err))
	}
	return nil
}

// ListCategories ordena pelo nome.
func (r *CatalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := `SELECT id, nome, descricao, ativo, created_at FROM categorias`
	if activeOnly {
		query += ` WHERE ativo`
	}
	query += ` ORDER BY nome`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// UpdateCategory grava nome, descrição e situação pelo ID.
func (r *CatalogRepo) UpdateCategory(ctx context.Context, c *entity.Category) error {
	query := `UPDATE categorias SET nome = $2, descricao = $3, ativo = $4 WHERE id = $1`
	return r.update(ctx, query, c.ID, c.Name, c.Description, c.Active)
}

// DeleteCategory remove pelo nome.
func (r *CatalogRepo) DeleteCategory(ctx context.Context, name string) error {
	return r.delete(ctx, `DELETE FROM categorias WHERE LOWER(nome) = LOWER($1)`, name)
}

// CreateUnit insere a unidade; códigos são únicos sem diferenciar maiúsculas.
func (r *CatalogRepo) CreateUnit(ctx context.Context, u *entity.Unit) error {
	query := `INSERT INTO unidades_medida (id, codigo, descricao, ativo, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, u.ID, u.Code, u.Description, u.Active, u.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("create unit: %w", translate(err))
	}
	return nil
}

// ListUnits ordena pelo código.
func (r *CatalogRepo) ListUnits(ctx context.Context, activeOnly bool) ([]*entity.Unit, error) {
	query := `SELECT id, codigo, descricao, ativo, created_at FROM unidades_medida`
	if activeOnly {
		query += ` WHERE ativo`
	}
	query += ` ORDER BY codigo`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var out []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Code, &u.Description, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// UpdateUnit grava código, descrição e situação pelo ID.
func (r *CatalogRepo) UpdateUnit(ctx context.Context, u *entity.Unit) error {
	query := `UPDATE unidades_medida SET codigo = $2, descricao = $3, ativo = $4 WHERE id = $1`
	return r.update(ctx, query, u.ID, u.Code, u.Description, u.Active)
}

// DeleteUnit remove pelo código.
func (r *CatalogRepo) DeleteUnit(ctx context.Context, code string) error {
	return r.delete(ctx, `DELETE FROM unidades_medida WHERE UPPER(codigo) = UPPER($1)`, code)
}

func (r *CatalogRepo) delete(ctx context.Context, query, arg string) error {
	tag, err := r.q.Exec(ctx, query, arg)
	if err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) update(ctx context.Context, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update catalog: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
