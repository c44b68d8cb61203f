package dto

import "time"

// CreateBranchRequest entrada para cadastrar uma filial.
type CreateBranchRequest struct {
	Number  string `json:"numero" validate:"required,min=1,max=10" label:"Número"`
	Name    string `json:"nome" validate:"required,min=3,max=100" label:"Nome"`
	City    string `json:"cidade" validate:"required,min=2,max=100" label:"Cidade"`
	Address string `json:"endereco" validate:"max=200" label:"Endereço"`
	Phone   string `json:"telefone" validate:"max=20" label:"Telefone"`
}

// UpdateBranchRequest entrada para editar uma filial. Campos nil não mudam.
type UpdateBranchRequest struct {
	Number  *string `json:"numero" validate:"omitempty,min=1,max=10" label:"Número"`
	Name    *string `json:"nome" validate:"omitempty,min=3,max=100" label:"Nome"`
	City    *string `json:"cidade" validate:"omitempty,min=2,max=100" label:"Cidade"`
	Address *string `json:"endereco" validate:"omitempty,max=200" label:"Endereço"`
	Phone   *string `json:"telefone" validate:"omitempty,max=20" label:"Telefone"`
	Active  *bool   `json:"ativo"`
	User    string  `json:"usuario"`
}

// BranchResponse saída de uma filial.
type BranchResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"numero"`
	Name      string    `json:"nome"`
	City      string    `json:"cidade"`
	Address   string    `json:"endereco,omitempty"`
	Phone     string    `json:"telefone,omitempty"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
