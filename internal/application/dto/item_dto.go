package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para cadastrar um brinde em uma única filial.
type CreateItemRequest struct {
	Description string          `json:"descricao" validate:"required,min=3,max=200" label:"Descrição"`
	Category    string          `json:"categoria" validate:"required" label:"Categoria"`
	Unit        string          `json:"unidade_medida" validate:"required" label:"Unidade de Medida"`
	Branch      string          `json:"filial" validate:"required" label:"Filial"`
	Quantity    int64           `json:"quantidade" validate:"min=0" label:"Quantidade"`
	UnitPrice   decimal.Decimal `json:"valor_unitario" validate:"min=0" label:"Valor Unitário"`
	Notes       string          `json:"observacoes" validate:"max=500" label:"Observações"`
	User        string          `json:"usuario"`
}

// UpdateItemRequest entrada para editar os campos descritivos. Campos nil não mudam.
// A quantidade nunca é alterada por aqui.
type UpdateItemRequest struct {
	Description *string          `json:"descricao" validate:"omitempty,min=3,max=200" label:"Descrição"`
	Category    *string          `json:"categoria" label:"Categoria"`
	Unit        *string          `json:"unidade_medida" label:"Unidade de Medida"`
	Branch      *string          `json:"filial" label:"Filial"`
	UnitPrice   *decimal.Decimal `json:"valor_unitario" validate:"omitempty,min=0" label:"Valor Unitário"`
	Notes       *string          `json:"observacoes" validate:"omitempty,max=500" label:"Observações"`
	User        string           `json:"usuario"`
}

// ItemFilter filtros de listagem.
type ItemFilter struct {
	Branch   string `json:"filial"`
	Category string `json:"categoria"`
	Unit     string `json:"unidade_medida"`
	Search   string `json:"busca"`
}

// ItemResponse saída de um brinde.
type ItemResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"codigo"`
	LogicalID   string          `json:"logical_id"`
	Description string          `json:"descricao"`
	Category    string          `json:"categoria"`
	Unit        string          `json:"unidade_medida"`
	Branch      string          `json:"filial"`
	Quantity    int64           `json:"quantidade"`
	UnitPrice   decimal.Decimal `json:"valor_unitario"`
	TotalValue  decimal.Decimal `json:"valor_total"`
	Notes       string          `json:"observacoes"`
	CreatedBy   string          `json:"usuario_cadastro"`
	CreatedAt   time.Time       `json:"data_cadastro"`
	UpdatedAt   time.Time       `json:"data_atualizacao"`
}

// AllocateItemRequest cadastro de um brinde novo dividindo o total entre filiais.
type AllocateItemRequest struct {
	Description string             `json:"descricao" validate:"required,min=3,max=200" label:"Descrição"`
	Category    string             `json:"categoria" validate:"required" label:"Categoria"`
	Unit        string             `json:"unidade_medida" validate:"required" label:"Unidade de Medida"`
	UnitPrice   decimal.Decimal    `json:"valor_unitario" validate:"min=0" label:"Valor Unitário"`
	Notes       string             `json:"observacoes" validate:"max=500" label:"Observações"`
	Total       int64              `json:"quantidade_total" label:"Quantidade Total"`
	Allocations []BranchAllocation `json:"alocacao" validate:"required,min=1,dive" label:"Alocação por Filial"`
	User        string             `json:"usuario"`
}

// BranchAllocation quantidade destinada a uma filial.
type BranchAllocation struct {
	Branch   string `json:"filial" validate:"required" label:"Filial"`
	Quantity int64  `json:"quantidade" validate:"min=0" label:"Quantidade"`
}

// AllocationResponse linhas criadas por uma alocação.
type AllocationResponse struct {
	LogicalID string         `json:"logical_id"`
	Items     []ItemResponse `json:"itens"`
}
