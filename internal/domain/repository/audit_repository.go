package repository

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// AuditRepository persiste registros de auditoria.
type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	// List devolve os registros mais recentes primeiro; table/recordID vazios não filtram.
	List(ctx context.Context, table, recordID string, limit int) ([]*entity.AuditRecord, error)
}
