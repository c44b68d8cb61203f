package entity

import "time"

// Perfis de usuário.
const (
	ProfileAdmin   = "Admin"
	ProfileManager = "Gestor"
	ProfileUser    = "Usuario"
)

// Profiles perfis aceitos, na ordem de exibição.
var Profiles = []string{ProfileAdmin, ProfileManager, ProfileUser}

// User cadastro de um usuário do sistema. Não guarda credenciais.
type User struct {
	ID        string
	Username  string // sempre em minúsculas
	Name      string
	Email     string
	Branch    string // nome da filial de lotação
	Profile   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
