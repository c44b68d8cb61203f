package dto

import (
	"encoding/json"
	"time"
)

// AuditFilter filtros da trilha de auditoria.
type AuditFilter struct {
	Table    string `json:"tabela" validate:"omitempty,oneof=brindes movimentacoes" label:"Tabela"`
	RecordID string `json:"registro_id"`
	Limit    int    `json:"limit" validate:"min=0" label:"Limite"`
}

// AuditResponse saída de um registro de auditoria.
type AuditResponse struct {
	ID        string          `json:"id"`
	Table     string          `json:"tabela"`
	Action    string          `json:"acao"`
	RecordID  string          `json:"registro_id"`
	Before    json.RawMessage `json:"dados_anteriores,omitempty"`
	After     json.RawMessage `json:"dados_novos,omitempty"`
	UserID    string          `json:"usuario"`
	Timestamp time.Time       `json:"timestamp"`
}
