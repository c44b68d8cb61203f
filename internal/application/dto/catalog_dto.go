package dto

import "time"

// CreateCategoryRequest entrada para cadastrar uma categoria.
type CreateCategoryRequest struct {
	Name        string `json:"nome" validate:"required,min=2,max=50" label:"Nome"`
	Description string `json:"descricao" validate:"max=200" label:"Descrição"`
}

// UpdateCategoryRequest entrada para editar uma categoria. Campos nil não mudam.
type UpdateCategoryRequest struct {
	Name        *string `json:"nome" validate:"omitempty,min=2,max=50" label:"Nome"`
	Description *string `json:"descricao" validate:"omitempty,max=200" label:"Descrição"`
	Active      *bool   `json:"ativo"`
	User        string  `json:"usuario"`
}

// CategoryResponse saída de uma categoria.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao,omitempty"`
	Active      bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateUnitRequest entrada para cadastrar uma unidade de medida.
type CreateUnitRequest struct {
	Code        string `json:"codigo" validate:"required,min=1,max=10" label:"Código"`
	Description string `json:"descricao" validate:"required,min=2,max=50" label:"Descrição"`
}

// UpdateUnitRequest entrada para editar uma unidade de medida. Campos nil não mudam.
type UpdateUnitRequest struct {
	Code        *string `json:"codigo" validate:"omitempty,min=1,max=10" label:"Código"`
	Description *string `json:"descricao" validate:"omitempty,min=2,max=50" label:"Descrição"`
	Active      *bool   `json:"ativo"`
	User        string  `json:"usuario"`
}

// UnitResponse saída de uma unidade de medida.
type UnitResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"codigo"`
	Description string    `json:"descricao"`
	Active      bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
}
