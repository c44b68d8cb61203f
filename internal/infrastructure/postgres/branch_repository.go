package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, numero, nome, cidade, endereco, telefone, ativo, created_at, updated_at`

// BranchRepo implementação de BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository constrói o adaptador.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create insere a filial.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `INSERT INTO filiais (` + branchColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Number, b.Name, b.City, b.Address, b.Phone, b.Active, b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create branch: %w", translate(err))
	}
	return nil
}

// GetByName busca a filial pelo nome, sem diferenciar maiúsculas.
func (r *BranchRepo) GetByName(ctx context.Context, name string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM filiais WHERE LOWER(nome) = LOWER($1) LIMIT 1`
	b, err := scanBranch(r.q.QueryRow(ctx, query, strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// List ordena pelo número da filial.
func (r *BranchRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM filiais`
	if activeOnly {
		query += ` WHERE ativo`
	}
	query += ` ORDER BY numero`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var out []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update grava todos os campos da filial.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE filiais
		SET numero = $2, nome = $3, cidade = $4, endereco = $5, telefone = $6, ativo = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.Number, b.Name, b.City, b.Address, b.Phone, b.Active, b.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("update branch: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(
		&b.ID, &b.Number, &b.Name, &b.City, &b.Address, &b.Phone, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
