package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, transacao_id, brinde_id, tipo, quantidade, usuario, justificativa,
	observacoes, destino, filial_origem, filial_destino, data_hora`

// MovementRepo implementação do livro de estoque sobre PostgreSQL (append-only).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador. Pasar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create registra a movimentação.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movimentacoes (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ItemID, m.Type, m.Quantity, m.User, m.Justification,
		m.Notes, m.Destination, m.OriginBranch, m.DestinationBranch, m.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", translate(err))
	}
	return nil
}

// List mais recentes primeiro; empates pela sequência de inserção.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		conds []string
		args  []any
	)
	if f.ItemID != "" {
		args = append(args, f.ItemID)
		conds = append(conds, fmt.Sprintf("brinde_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("tipo = $%d", len(args)))
	}
	query := `SELECT ` + movementColumns + ` FROM movimentacoes`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY data_hora DESC, seq DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ItemID, &m.Type, &m.Quantity, &m.User, &m.Justification,
			&m.Notes, &m.Destination, &m.OriginBranch, &m.DestinationBranch, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ExistsForItem indica se há movimentações do brinde.
func (r *MovementRepo) ExistsForItem(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movimentacoes WHERE brinde_id = $1)`, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movement exists: %w", err)
	}
	return exists, nil
}
