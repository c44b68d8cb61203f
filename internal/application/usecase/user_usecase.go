package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/application/validation"
	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/directory"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// UserUseCase cadastro de usuários. Não guarda credenciais: o usuário identifica
// quem registra movimentações e onde está lotado.
type UserUseCase struct {
	repo      repository.UserRepository
	lookups   *LookupService
	validator *validation.Validator
	sink      *audit.Sink
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(
	repo repository.UserRepository,
	lookups *LookupService,
	validator *validation.Validator,
	sink *audit.Sink,
) *UserUseCase {
	return &UserUseCase{repo: repo, lookups: lookups, validator: validator, sink: sink}
}

// Create cadastra um usuário ativo lotado numa filial ativa.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username, err := directory.NormalizeUsername(in.Username)
	if err != nil {
		return nil, err
	}
	in.Username = username
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	branch, err := uc.branch(ctx, in.Branch)
	if err != nil {
		return nil, err
	}
	profile, err := directory.Profile(in.Profile)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &entity.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		Name:      in.Name,
		Email:     in.Email,
		Branch:    branch,
		Profile:   profile,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("username", fmt.Sprintf("Usuário '%s' já existe", u.Username))
		}
		return nil, err
	}

	rec := audit.NewRecorder(actingUser(in.User), now)
	rec.Insert(entity.AuditTableUsers, u.ID, dto.NewUserResponse(u))
	uc.sink.Emit(ctx, rec)

	out := dto.NewUserResponse(u)
	return &out, nil
}

// List lista usuários ordenados pelo username.
func (uc *UserUseCase) List(ctx context.Context, activeOnly bool) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Get busca pelo username. Devolve domain.ErrNotFound se não existir.
func (uc *UserUseCase) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, username)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Update altera os campos informados. O username não muda.
func (uc *UserUseCase) Update(ctx context.Context, username string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	in.Name = trimmed(in.Name)
	in.Email = trimmed(in.Email)
	if err := validation.RequiredIfSet("nome", "Nome", in.Name); err != nil {
		return nil, err
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	cur, err := uc.find(ctx, username)
	if err != nil {
		return nil, err
	}
	next := *cur
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Email != nil {
		next.Email = *in.Email
	}
	if in.Branch != nil {
		if next.Branch, err = uc.branch(ctx, *in.Branch); err != nil {
			return nil, err
		}
	}
	if in.Profile != nil {
		if next.Profile, err = directory.Profile(*in.Profile); err != nil {
			return nil, err
		}
	}
	if in.Active != nil {
		next.Active = *in.Active
	}

	now := time.Now()
	next.UpdatedAt = now
	if err := uc.repo.Update(ctx, &next); err != nil {
		return nil, err
	}

	rec := audit.NewRecorder(actingUser(in.User), now)
	rec.Update(entity.AuditTableUsers, cur.ID, dto.NewUserResponse(cur), dto.NewUserResponse(&next))
	uc.sink.Emit(ctx, rec)

	out := dto.NewUserResponse(&next)
	return &out, nil
}

// SetActive ativa ou desativa o usuário.
func (uc *UserUseCase) SetActive(ctx context.Context, username string, active bool, user string) (*dto.UserResponse, error) {
	return uc.Update(ctx, username, dto.UpdateUserRequest{Active: &active, User: user})
}

func (uc *UserUseCase) branch(ctx context.Context, name string) (string, error) {
	branches, err := uc.lookups.Branches(ctx)
	if err != nil {
		return "", err
	}
	return validation.Choice("filial", "Filial", name, branches)
}

func (uc *UserUseCase) find(ctx context.Context, username string) (*entity.User, error) {
	u, err := uc.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
