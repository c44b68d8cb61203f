package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brindez/controle-brindes/internal/domain"
)

// isUniqueViolation verifica se o erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// translate converte violações conhecidas nos erros de domínio.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// codeOrder ordena códigos numéricos corretamente mesmo acima de 999.
const codeOrder = "LENGTH(codigo), codigo, filial"

// deref colunas de texto anuláveis viram string vazia.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
