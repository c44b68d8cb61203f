package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, nome, email, filial, perfil, ativo, created_at, updated_at`

// UserRepo implementação de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create insere o usuário; username é único sem diferenciar maiúsculas.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO usuarios (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Name, u.Email, u.Branch, u.Profile, u.Active, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

// GetByUsername busca pelo username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE LOWER(username) = LOWER($1) LIMIT 1`
	u, err := scanUser(r.q.QueryRow(ctx, query, strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List ordena pelo username.
func (r *UserRepo) List(ctx context.Context, activeOnly bool) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios`
	if activeOnly {
		query += ` WHERE ativo`
	}
	query += ` ORDER BY username`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountByBranch usuários lotados na filial.
func (r *UserRepo) CountByBranch(ctx context.Context, branch string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios WHERE LOWER(filial) = LOWER($1)`, strings.TrimSpace(branch)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// Update grava todos os campos do usuário.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios
		SET username = $2, nome = $3, email = $4, filial = $5, perfil = $6, ativo = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Name, u.Email, u.Branch, u.Profile, u.Active, u.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("update user: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u     entity.User
		email *string
	)
	if err := row.Scan(
		&u.ID, &u.Username, &u.Name, &email, &u.Branch, &u.Profile, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Email = deref(email)
	return &u, nil
}
