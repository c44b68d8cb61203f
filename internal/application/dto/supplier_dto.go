package dto

import "time"

// CreateSupplierRequest entrada para cadastrar um fornecedor. Código vazio é gerado (FOR001, FOR002...).
type CreateSupplierRequest struct {
	Code        string `json:"codigo" validate:"max=20" label:"Código"`
	Name        string `json:"nome" validate:"required,min=2,max=150" label:"Nome"`
	ContactName string `json:"contato_nome" validate:"max=100" label:"Contato"`
	Phone       string `json:"telefone" validate:"max=20" label:"Telefone"`
	Email       string `json:"email" validate:"omitempty,email,max=150" label:"E-mail"`
	Address     string `json:"endereco" validate:"max=200" label:"Endereço"`
	City        string `json:"cidade" validate:"max=100" label:"Cidade"`
	State       string `json:"estado" validate:"omitempty,len=2,alpha" label:"UF"`
	ZipCode     string `json:"cep" validate:"max=10" label:"CEP"`
	CNPJ        string `json:"cnpj" label:"CNPJ"`
	Notes       string `json:"observacoes" validate:"max=500" label:"Observações"`
	User        string `json:"usuario"`
}

// UpdateSupplierRequest entrada para editar um fornecedor. Campos nil não mudam.
type UpdateSupplierRequest struct {
	Name        *string `json:"nome" validate:"omitempty,min=2,max=150" label:"Nome"`
	ContactName *string `json:"contato_nome" validate:"omitempty,max=100" label:"Contato"`
	Phone       *string `json:"telefone" validate:"omitempty,max=20" label:"Telefone"`
	Email       *string `json:"email" validate:"omitempty,email,max=150" label:"E-mail"`
	Address     *string `json:"endereco" validate:"omitempty,max=200" label:"Endereço"`
	City        *string `json:"cidade" validate:"omitempty,max=100" label:"Cidade"`
	State       *string `json:"estado" validate:"omitempty,len=2,alpha" label:"UF"`
	ZipCode     *string `json:"cep" validate:"omitempty,max=10" label:"CEP"`
	CNPJ        *string `json:"cnpj" label:"CNPJ"`
	Notes       *string `json:"observacoes" validate:"omitempty,max=500" label:"Observações"`
	Active      *bool   `json:"ativo"`
	User        string  `json:"usuario"`
}

// SupplierFilter filtros da listagem.
type SupplierFilter struct {
	Search string `json:"busca"`
	// All inclui os inativos.
	All bool `json:"todos"`
}

// SupplierResponse saída de um fornecedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"codigo"`
	Name        string    `json:"nome"`
	ContactName string    `json:"contato_nome,omitempty"`
	Phone       string    `json:"telefone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"endereco,omitempty"`
	City        string    `json:"cidade,omitempty"`
	State       string    `json:"estado,omitempty"`
	ZipCode     string    `json:"cep,omitempty"`
	CNPJ        string    `json:"cnpj,omitempty"`
	Notes       string    `json:"observacoes,omitempty"`
	Active      bool      `json:"ativo"`
	CreatedBy   string    `json:"usuario_cadastro,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
