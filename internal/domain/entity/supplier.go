package entity

import "time"

// Supplier fornecedor de brindes. Code segue o padrão "FOR001".
type Supplier struct {
	ID          string
	Code        string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	City        string
	State       string // UF
	ZipCode     string
	CNPJ        string // formatado: 00.000.000/0000-00
	Notes       string
	Active      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
