package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, codigo, logical_id, descricao, descricao_chave, categoria, unidade_medida,
	filial, quantidade, valor_unitario, observacoes, usuario_cadastro, data_cadastro, data_atualizacao`

// ItemRepo implementação de ItemRepository sobre PostgreSQL (pool ou tx).
type ItemRepo struct {
	q         Querier
	forUpdate bool
}

// NewItemRepository constrói o adaptador. forUpdate=true bloqueia a linha lida por GetByID.
func NewItemRepository(q Querier, forUpdate bool) *ItemRepo {
	return &ItemRepo{q: q, forUpdate: forUpdate}
}

// Create insere o brinde.
func (r *ItemRepo) Create(ctx context.Context, i *entity.Item) error {
	query := `INSERT INTO brindes (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.Code, i.LogicalID, i.Description, i.DescriptionKey, i.Category, i.Unit,
		i.Branch, i.Quantity, i.UnitPrice, i.Notes, i.CreatedBy, i.CreatedAt.UTC(), i.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create item: %w", translate(err))
	}
	return nil
}

// GetByID obtém o brinde; dentro de transação a linha fica bloqueada até o Commit.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM brindes WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	return r.one(ctx, query, id)
}

// Update substitui os campos descritivos; quantidade, código e logical_id não mudam.
func (r *ItemRepo) Update(ctx context.Context, i *entity.Item) error {
	query := `
		UPDATE brindes
		SET descricao = $2, descricao_chave = $3, categoria = $4, unidade_medida = $5,
		    filial = $6, valor_unitario = $7, observacoes = $8, data_atualizacao = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		i.ID, i.Description, i.DescriptionKey, i.Category, i.Unit,
		i.Branch, i.UnitPrice, i.Notes, i.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("update item: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o brinde.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM brindes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista brindes filtrados, ordenados por código e filial.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if b := strings.TrimSpace(f.Branch); b != "" {
		add("LOWER(filial) = LOWER($%d)", b)
	}
	if f.Category != "" {
		add("LOWER(categoria) = LOWER($%d)", f.Category)
	}
	if f.Unit != "" {
		add("LOWER(unidade_medida) = LOWER($%d)", f.Unit)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, inventory.SearchPattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(descricao_chave LIKE $%d ESCAPE '\' OR LOWER(codigo) LIKE $%d ESCAPE '\')`, n, n))
	}
	query := `SELECT ` + itemColumns + ` FROM brindes`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY ` + codeOrder
	return r.many(ctx, query, args...)
}

// FindByKeyAndBranch busca pela descrição normalizada na filial.
func (r *ItemRepo) FindByKeyAndBranch(ctx context.Context, key, branch string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM brindes
		WHERE descricao_chave = $1 AND LOWER(filial) = LOWER($2)
		ORDER BY ` + codeOrder + ` LIMIT 1`
	return r.one(ctx, query, key, branch)
}

// FindByLogicalIDAndBranch busca a linha do mesmo brinde lógico na filial.
func (r *ItemRepo) FindByLogicalIDAndBranch(ctx context.Context, logicalID, branch string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM brindes
		WHERE logical_id = $1 AND LOWER(filial) = LOWER($2)
		ORDER BY ` + codeOrder + ` LIMIT 1`
	return r.one(ctx, query, logicalID, branch)
}

// ListCodes devolve todos os códigos.
func (r *ItemRepo) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT codigo FROM brindes`)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	return codes, nil
}

// AdjustQuantity UPDATE condicional: só aplica se o saldo resultante não for negativo.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id string, delta int64) (bool, error) {
	query := `
		UPDATE brindes
		SET quantidade = quantidade + $2, data_atualizacao = now()
		WHERE id = $1 AND quantidade + $2 >= 0`
	tag, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return false, fmt.Errorf("adjust quantity: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ItemRepo) one(ctx context.Context, query string, args ...any) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *ItemRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var out []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.Code, &i.LogicalID, &i.Description, &i.DescriptionKey, &i.Category, &i.Unit,
		&i.Branch, &i.Quantity, &i.UnitPrice, &i.Notes, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
