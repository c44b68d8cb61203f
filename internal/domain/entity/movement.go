package entity

import "time"

// Tipos de movimentação do livro de estoque.
const (
	MovementTypeEntrada              = "entrada"
	MovementTypeSaida                = "saida"
	MovementTypeTransferenciaSaida   = "transferencia_saida"
	MovementTypeTransferenciaEntrada = "transferencia_entrada"
)

// MovementTypes lista os tipos válidos.
var MovementTypes = []string{
	MovementTypeEntrada,
	MovementTypeSaida,
	MovementTypeTransferenciaSaida,
	MovementTypeTransferenciaEntrada,
}

// Movement representa uma linha do livro de estoque (append-only).
// Quantity é sempre positiva; o sinal vem do tipo.
type Movement struct {
	ID                string
	TransactionID     string // as duas linhas de uma transferência compartilham o mesmo valor
	ItemID            string
	Type              string
	Quantity          int64
	User              string
	Justification     string
	Notes             string
	Destination       string
	OriginBranch      string // apenas transferências
	DestinationBranch string // apenas transferências
	CreatedAt         time.Time
}

// IsInbound indica se o tipo soma ao estoque.
func IsInbound(movementType string) bool {
	return movementType == MovementTypeEntrada || movementType == MovementTypeTransferenciaEntrada
}

// IsOutbound indica se o tipo subtrai do estoque.
func IsOutbound(movementType string) bool {
	return movementType == MovementTypeSaida || movementType == MovementTypeTransferenciaSaida
}

// IsValidMovementType indica se o tipo é conhecido.
func IsValidMovementType(movementType string) bool {
	return IsInbound(movementType) || IsOutbound(movementType)
}

// Delta devolve a variação assinada que o movimento aplica ao estoque.
func (m *Movement) Delta() int64 {
	if IsOutbound(m.Type) {
		return -m.Quantity
	}
	return m.Quantity
}
