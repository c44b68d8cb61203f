package entity

import "time"

// Branch representa uma filial, a chave de partição do estoque.
type Branch struct {
	ID        string
	Number    string // número da filial ("001")
	Name      string
	City      string
	Address   string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
