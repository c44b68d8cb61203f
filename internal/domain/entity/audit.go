package entity

import (
	"encoding/json"
	"time"
)

// Ações de auditoria.
const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// Tabelas auditadas.
const (
	AuditTableItems      = "brindes"
	AuditTableMovements  = "movimentacoes"
	AuditTableBranches   = "filiais"
	AuditTableCategories = "categorias"
	AuditTableUnits      = "unidades_medida"
	AuditTableSuppliers  = "fornecedores"
	AuditTableUsers      = "usuarios"
)

// AuditRecord registro de auditoria de criação/alteração/exclusão.
type AuditRecord struct {
	ID        string
	Table     string
	Action    string
	RecordID  string
	Before    json.RawMessage // nil em INSERT
	After     json.RawMessage // nil em DELETE
	UserID    string
	Timestamp time.Time
}
