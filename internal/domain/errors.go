package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrBusinessRule       = errors.New("regra de negócio violada")
	ErrDuplicate          = errors.New("registro duplicado")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
	ErrSameBranch         = errors.New("a filial de destino deve ser diferente da filial de origem")
	ErrItemHasMovements   = errors.New("não é possível excluir um brinde que possui movimentações registradas")
	ErrAllocationMismatch = errors.New("soma da alocação por filial difere do total")
	ErrInUse              = errors.New("registro em uso")
	ErrConcurrentUpdate   = errors.New("estoque alterado durante a operação")
)

// Códigos de regra de negócio.
const (
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeSameBranch        = "SAME_BRANCH"
	CodeItemHasMovements  = "ITEM_HAS_MOVEMENTS"
	CodeInUse             = "IN_USE"
)

// ValidationError entrada malformada ou ausente. Nenhuma mutação ocorreu.
type ValidationError struct {
	Field   string
	Message string
	Err     error // causa específica opcional (ex.: ErrAllocationMismatch)
}

// NewValidation cria um ValidationError para o campo informado.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, ErrInvalidInput) e com a causa específica.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidInput {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// BusinessRuleError entrada bem-formada que viola uma regra do domínio.
// Sempre retornado antes de qualquer mutação do movimento em questão.
type BusinessRuleError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

// NewBusinessRule cria um BusinessRuleError.
func NewBusinessRule(code, message string, cause error) *BusinessRuleError {
	return &BusinessRuleError{Code: code, Message: message, Err: cause}
}

// NewInsufficientStock erro de saldo insuficiente com solicitado/disponível nos detalhes.
func NewInsufficientStock(itemID string, requested, available int64) *BusinessRuleError {
	return &BusinessRuleError{
		Code: CodeInsufficientStock,
		Message: fmt.Sprintf("Quantidade solicitada (%d) é maior que o estoque disponível (%d)",
			requested, available),
		Details: map[string]any{
			"brinde_id":  itemID,
			"solicitado": requested,
			"disponivel": available,
		},
		Err: ErrInsufficientStock,
	}
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, ErrBusinessRule) e com a causa específica.
func (e *BusinessRuleError) Is(target error) bool {
	if target == ErrBusinessRule {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// WithDetail adiciona um par chave/valor aos detalhes.
func (e *BusinessRuleError) WithDetail(key string, value any) *BusinessRuleError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// IsValidation indica se err é (ou envolve) um ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsBusinessRule indica se err é (ou envolve) um BusinessRuleError.
func IsBusinessRule(err error) bool {
	var be *BusinessRuleError
	return errors.As(err, &be)
}
