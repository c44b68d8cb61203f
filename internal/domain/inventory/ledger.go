package inventory

import (
	"fmt"
	"math"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// CheckMovement verifica se um movimento pode ser aplicado a um saldo.
// Saídas exigem onHand >= quantidade; entradas só são limitadas pela capacidade do saldo (int64).
func CheckMovement(itemID string, onHand int64, movementType string, quantity int64) error {
	if !entity.IsValidMovementType(movementType) {
		return domain.NewValidation("tipo", "Tipo de movimentação inválido: "+movementType)
	}
	if quantity <= 0 {
		return domain.NewValidation("quantidade", "O campo 'Quantidade' deve ser um número inteiro positivo")
	}
	if entity.IsOutbound(movementType) && quantity > onHand {
		return domain.NewInsufficientStock(itemID, quantity, onHand)
	}
	if entity.IsInbound(movementType) && quantity > math.MaxInt64-onHand {
		return domain.NewValidation("quantidade",
			fmt.Sprintf("A quantidade (%d) excede o saldo máximo permitido para o brinde (saldo atual %d)", quantity, onHand))
	}
	return nil
}

// Replay soma as variações assinadas de uma sequência de movimentos a partir
// da quantidade de criação. Devolve o saldo esperado.
func Replay(initial int64, movements []*entity.Movement) int64 {
	q := initial
	for _, m := range movements {
		q += m.Delta()
	}
	return q
}
