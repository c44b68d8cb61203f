package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa um brinde em uma filial (uma linha por item lógico e filial).
// Quantity só muda via movimentações do livro de estoque; nunca é negativa.
type Item struct {
	ID             string
	Code           string // código sequencial de exibição ("001", "002", ...)
	LogicalID      string // compartilhado por todas as linhas do mesmo brinde nas filiais
	Description    string
	DescriptionKey string // descrição normalizada, chave de busca entre filiais
	Category       string
	Unit           string
	Branch         string
	Quantity       int64
	UnitPrice      decimal.Decimal
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalValue devolve quantidade * valor unitário.
func (i *Item) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Clone devolve uma cópia rasa (todos os campos são valores).
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
