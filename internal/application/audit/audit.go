// Package audit coleta os registros de auditoria durante uma transação e os
// emite depois do commit.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// Recorder acumula registros de uma operação. Não é seguro para uso concorrente;
// cada operação cria o seu.
type Recorder struct {
	user     string
	now      time.Time
	records  []*entity.AuditRecord
	failures []failure
}

// failure guarda um estado que não pôde ser serializado; o registro segue sem ele.
type failure struct {
	table    string
	action   string
	recordID string
	field    string
	err      error
}

// NewRecorder cria um coletor para o usuário informado; todos os registros recebem o mesmo instante.
func NewRecorder(user string, now time.Time) *Recorder {
	return &Recorder{user: user, now: now}
}

// Insert registra a criação de um registro.
func (r *Recorder) Insert(table, recordID string, after any) {
	r.add(table, entity.AuditActionInsert, recordID, nil, after)
}

// Update registra uma alteração com os estados anterior e novo.
func (r *Recorder) Update(table, recordID string, before, after any) {
	r.add(table, entity.AuditActionUpdate, recordID, before, after)
}

// Delete registra uma exclusão com o estado anterior.
func (r *Recorder) Delete(table, recordID string, before any) {
	r.add(table, entity.AuditActionDelete, recordID, before, nil)
}

// Records devolve os registros acumulados, na ordem em que ocorreram.
func (r *Recorder) Records() []*entity.AuditRecord {
	return r.records
}

// Reset descarta o que foi acumulado (usado quando a transação é repetida ou desfeita).
func (r *Recorder) Reset() {
	r.records = nil
	r.failures = nil
}

// Err devolve as falhas de serialização acumuladas, ou nil.
func (r *Recorder) Err() error {
	errs := make([]error, 0, len(r.failures))
	for _, f := range r.failures {
		errs = append(errs, fmt.Errorf("auditoria %s %s/%s (%s): %w", f.action, f.table, f.recordID, f.field, f.err))
	}
	return errors.Join(errs...)
}

func (r *Recorder) add(table, action, recordID string, before, after any) {
	r.records = append(r.records, &entity.AuditRecord{
		ID:        uuid.New().String(),
		Table:     table,
		Action:    action,
		RecordID:  recordID,
		Before:    r.marshal(table, action, recordID, "dados_anteriores", before),
		After:     r.marshal(table, action, recordID, "dados_novos", after),
		UserID:    r.user,
		Timestamp: r.now,
	})
}

func (r *Recorder) marshal(table, action, recordID, field string, v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		r.failures = append(r.failures, failure{table: table, action: action, recordID: recordID, field: field, err: err})
		return nil
	}
	return b
}

// Sink persiste os registros no repositório e os replica no logger de auditoria.
// Falhas são registradas como aviso e nunca interrompem a operação de origem.
type Sink struct {
	repo     repository.AuditRepository
	log      *logger.Logger
	auditLog *logger.Logger
}

// NewSink constrói o destino da auditoria.
func NewSink(repo repository.AuditRepository, log, auditLog *logger.Logger) *Sink {
	if log == nil {
		log = logger.Nop()
	}
	if auditLog == nil {
		auditLog = logger.Nop()
	}
	return &Sink{repo: repo, log: log, auditLog: auditLog}
}

// Emit grava os registros já confirmados. Estados que não puderam ser
// serializados são avisados no logger da aplicação e gravados como nulos.
func (s *Sink) Emit(ctx context.Context, r *Recorder) {
	for _, f := range r.failures {
		s.log.Warn().Err(f.err).
			Str("tabela", f.table).
			Str("acao", f.action).
			Str("registro_id", f.recordID).
			Str("campo", f.field).
			Msg("falha ao serializar estado da auditoria")
	}
	for _, rec := range r.Records() {
		if err := s.repo.Create(ctx, rec); err != nil {
			s.log.Warn().Err(err).
				Str("tabela", rec.Table).
				Str("acao", rec.Action).
				Str("registro_id", rec.RecordID).
				Msg("falha ao gravar auditoria")
		}
		s.auditLog.Info().
			Str("tabela", rec.Table).
			Str("acao", rec.Action).
			Str("registro_id", rec.RecordID).
			Str("usuario", rec.UserID).
			RawJSON("dados_anteriores", orNull(rec.Before)).
			RawJSON("dados_novos", orNull(rec.After)).
			Time("timestamp", rec.Timestamp).
			Msg(rec.Action)
	}
}

// List consulta a trilha, mais recentes primeiro.
func (s *Sink) List(ctx context.Context, filter dto.AuditFilter) ([]dto.AuditResponse, error) {
	list, err := s.repo.List(ctx, filter.Table, filter.RecordID, filter.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.AuditResponse{
			ID:        r.ID,
			Table:     r.Table,
			Action:    r.Action,
			RecordID:  r.RecordID,
			Before:    r.Before,
			After:     r.After,
			UserID:    r.UserID,
			Timestamp: r.Timestamp,
		})
	}
	return out, nil
}

func orNull(b json.RawMessage) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
