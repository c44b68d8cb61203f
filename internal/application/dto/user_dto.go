package dto

import "time"

// CreateUserRequest entrada para cadastrar um usuário.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50" label:"Usuário"`
	Name     string `json:"nome" validate:"required,min=3,max=100" label:"Nome"`
	Email    string `json:"email" validate:"omitempty,email,max=150" label:"E-mail"`
	Branch   string `json:"filial" label:"Filial"`
	Profile  string `json:"perfil" label:"Perfil"`
	User     string `json:"usuario"`
}

// UpdateUserRequest entrada para editar um usuário. Campos nil não mudam.
type UpdateUserRequest struct {
	Name    *string `json:"nome" validate:"omitempty,min=3,max=100" label:"Nome"`
	Email   *string `json:"email" validate:"omitempty,email,max=150" label:"E-mail"`
	Branch  *string `json:"filial" label:"Filial"`
	Profile *string `json:"perfil" label:"Perfil"`
	Active  *bool   `json:"ativo"`
	User    string  `json:"usuario"`
}

// UserResponse saída de um usuário.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"nome"`
	Email     string    `json:"email,omitempty"`
	Branch    string    `json:"filial"`
	Profile   string    `json:"perfil"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
