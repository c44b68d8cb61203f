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
	"github.com/brindez/controle-brindes/internal/domain/entity"
	domaininv "github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// BranchUseCase diretório de filiais.
type BranchUseCase struct {
	repo      repository.BranchRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	lookups   *LookupService
	validator *validation.Validator
	sink      *audit.Sink
}

// NewBranchUseCase constrói o caso de uso.
func NewBranchUseCase(
	repo repository.BranchRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	lookups *LookupService,
	validator *validation.Validator,
	sink *audit.Sink,
) *BranchUseCase {
	return &BranchUseCase{
		repo:      repo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		lookups:   lookups,
		validator: validator,
		sink:      sink,
	}
}

// Create cadastra uma filial ativa.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	in.Number = strings.TrimSpace(in.Number)
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Number:    in.Number,
		Name:      in.Name,
		City:      in.City,
		Address:   in.Address,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("nome", fmt.Sprintf("Já existe uma filial com o nome '%s' ou o número '%s'", in.Name, in.Number))
		}
		return nil, err
	}
	uc.lookups.Invalidate(keyBranches)
	out := dto.NewBranchResponse(branch)
	return &out, nil
}

// List lista filiais; activeOnly restringe às ativas.
func (uc *BranchUseCase) List(ctx context.Context, activeOnly bool) ([]dto.BranchResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NewBranchResponse(b))
	}
	return out, nil
}

// GetByName busca pelo nome (sem diferenciar caixa). Devolve domain.ErrNotFound se não existir.
func (uc *BranchUseCase) GetByName(ctx context.Context, name string) (*dto.BranchResponse, error) {
	b, err := uc.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewBranchResponse(b)
	return &out, nil
}

// SetActive ativa ou desativa uma filial. Filiais inativas deixam de aceitar alocações e transferências.
func (uc *BranchUseCase) SetActive(ctx context.Context, name string, active bool, user string) (*dto.BranchResponse, error) {
	return uc.Update(ctx, name, dto.UpdateBranchRequest{Active: &active, User: user})
}

// Update altera os dados da filial identificada pelo nome. Renomear só é permitido
// enquanto nenhum brinde ou usuário referencia o nome atual.
func (uc *BranchUseCase) Update(ctx context.Context, name string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	in.Number = trimmed(in.Number)
	in.Name = trimmed(in.Name)
	in.City = trimmed(in.City)
	in.Address = trimmed(in.Address)
	in.Phone = trimmed(in.Phone)
	for _, err := range []error{
		validation.RequiredIfSet("numero", "Número", in.Number),
		validation.RequiredIfSet("nome", "Nome", in.Name),
		validation.RequiredIfSet("cidade", "Cidade", in.City),
	} {
		if err != nil {
			return nil, err
		}
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	cur, err := uc.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNotFound
	}
	next := *cur
	if in.Number != nil {
		next.Number = *in.Number
	}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.City != nil {
		next.City = *in.City
	}
	if in.Address != nil {
		next.Address = *in.Address
	}
	if in.Phone != nil {
		next.Phone = *in.Phone
	}
	if in.Active != nil {
		next.Active = *in.Active
	}
	if !domaininv.SameBranch(cur.Name, next.Name) {
		if err := uc.ensureUnused(ctx, cur.Name); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	next.UpdatedAt = now
	if err := uc.repo.Update(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("nome",
				fmt.Sprintf("Já existe uma filial com o nome '%s' ou o número '%s'", next.Name, next.Number))
		}
		return nil, err
	}
	uc.lookups.Invalidate(keyBranches)

	rec := audit.NewRecorder(actingUser(in.User), now)
	rec.Update(entity.AuditTableBranches, cur.ID, dto.NewBranchResponse(cur), dto.NewBranchResponse(&next))
	uc.sink.Emit(ctx, rec)

	out := dto.NewBranchResponse(&next)
	return &out, nil
}

// ensureUnused impede renomear uma filial ainda referenciada por brindes ou usuários.
func (uc *BranchUseCase) ensureUnused(ctx context.Context, name string) error {
	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{Branch: name})
	if err != nil {
		return err
	}
	users, err := uc.userRepo.CountByBranch(ctx, name)
	if err != nil {
		return err
	}
	if len(items) > 0 || users > 0 {
		return domain.NewBusinessRule(domain.CodeInUse,
			fmt.Sprintf("Não é possível renomear a filial '%s': %d brinde(s) e %d usuário(s) a utilizam",
				name, len(items), users),
			domain.ErrInUse)
	}
	return nil
}

// trimmed remove os espaços das pontas de um campo opcional.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
