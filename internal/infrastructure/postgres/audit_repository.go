package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo registros de auditoria sobre PostgreSQL (JSONB).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository constrói o adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create grava o registro.
func (r *AuditRepo) Create(ctx context.Context, rec *entity.AuditRecord) error {
	query := `
		INSERT INTO logs_auditoria (id, tabela, acao, registro_id, dados_anteriores, dados_novos, usuario, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.Table, rec.Action, rec.RecordID,
		jsonArg(rec.Before), jsonArg(rec.After), rec.UserID, rec.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create audit: %w", translate(err))
	}
	return nil
}

// List mais recentes primeiro.
func (r *AuditRepo) List(ctx context.Context, table, recordID string, limit int) ([]*entity.AuditRecord, error) {
	var (
		conds []string
		args  []any
	)
	if table != "" {
		args = append(args, table)
		conds = append(conds, fmt.Sprintf("tabela = $%d", len(args)))
	}
	if recordID != "" {
		args = append(args, recordID)
		conds = append(conds, fmt.Sprintf("registro_id = $%d", len(args)))
	}
	query := `SELECT id, tabela, acao, registro_id, dados_anteriores, dados_novos, usuario, "timestamp" FROM logs_auditoria`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY "timestamp" DESC, seq DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()
	var out []*entity.AuditRecord
	for rows.Next() {
		var (
			rec           entity.AuditRecord
			before, after []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Table, &rec.Action, &rec.RecordID, &before, &after, &rec.UserID, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		if len(before) > 0 {
			rec.Before = json.RawMessage(before)
		}
		if len(after) > 0 {
			rec.After = json.RawMessage(after)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// jsonArg NULL para ausente, texto JSON caso contrário.
func jsonArg(b json.RawMessage) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
