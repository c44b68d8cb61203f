package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/application/validation"
	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// CatalogUseCase categorias e unidades de medida.
type CatalogUseCase struct {
	repo      repository.CatalogRepository
	itemRepo  repository.ItemRepository
	lookups   *LookupService
	validator *validation.Validator
	sink      *audit.Sink
}

// NewCatalogUseCase constrói o caso de uso.
func NewCatalogUseCase(
	repo repository.CatalogRepository,
	itemRepo repository.ItemRepository,
	lookups *LookupService,
	validator *validation.Validator,
	sink *audit.Sink,
) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, itemRepo: itemRepo, lookups: lookups, validator: validator, sink: sink}
}

// CreateCategory cadastra uma categoria ativa.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("nome", fmt.Sprintf("Categoria '%s' já existe", in.Name))
		}
		return nil, err
	}
	uc.lookups.Invalidate(keyCategories)
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// ListCategories lista categorias; activeOnly restringe às ativas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCategoryResponse(c))
	}
	return out, nil
}

// DeleteCategory exclui a categoria se nenhum brinde a usa.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	used, err := uc.itemRepo.List(ctx, repository.ItemFilter{Category: name})
	if err != nil {
		return err
	}
	if len(used) > 0 {
		return domain.NewBusinessRule(domain.CodeInUse,
			fmt.Sprintf("Não é possível excluir a categoria '%s': %d brinde(s) a utilizam", name, len(used)),
			domain.ErrInUse)
	}
	if err := uc.repo.DeleteCategory(ctx, name); err != nil {
		return err
	}
	uc.lookups.Invalidate(keyCategories)
	return nil
}

// CreateUnit cadastra uma unidade ativa; o código é gravado em maiúsculas.
func (uc *CatalogUseCase) CreateUnit(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Description = strings.TrimSpace(in.Description)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	u := &entity.Unit{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.CreateUnit(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("codigo", fmt.Sprintf("Unidade '%s' já existe", in.Code))
		}
		return nil, err
	}
	uc.lookups.Invalidate(keyUnits)
	out := dto.NewUnitResponse(u)
	return &out, nil
}

// ListUnits lista unidades; activeOnly restringe às ativas.
func (uc *CatalogUseCase) ListUnits(ctx context.Context, activeOnly bool) ([]dto.UnitResponse, error) {
	list, err := uc.repo.ListUnits(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewUnitResponse(u))
	}
	return out, nil
}

// DeleteUnit exclui a unidade se nenhum brinde a usa.
func (uc *CatalogUseCase) DeleteUnit(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	used, err := uc.itemRepo.List(ctx, repository.ItemFilter{Unit: code})
	if err != nil {
		return err
	}
	if len(used) > 0 {
		return domain.NewBusinessRule(domain.CodeInUse,
			fmt.Sprintf("Não é possível excluir a unidade '%s': %d brinde(s) a utilizam", code, len(used)),
			domain.ErrInUse)
	}
	if err := uc.repo.DeleteUnit(ctx, code); err != nil {
		return err
	}
	uc.lookups.Invalidate(keyUnits)
	return nil
}

// UpdateCategory altera a categoria identificada pelo nome. Renomear só é permitido
// enquanto nenhum brinde a usa.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, name string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = trimmed(in.Name)
	in.Description = trimmed(in.Description)
	if err := validation.RequiredIfSet("nome", "Nome", in.Name); err != nil {
		return nil, err
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	idx := slices.IndexFunc(list, func(c *entity.Category) bool { return strings.EqualFold(c.Name, name) })
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	cur := list[idx]
	next := *cur
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Active != nil {
		next.Active = *in.Active
	}
	if !strings.EqualFold(cur.Name, next.Name) {
		used, err := uc.itemRepo.List(ctx, repository.ItemFilter{Category: cur.Name})
		if err != nil {
			return nil, err
		}
		if len(used) > 0 {
			return nil, domain.NewBusinessRule(domain.CodeInUse,
				fmt.Sprintf("Não é possível renomear a categoria '%s': %d brinde(s) a utilizam", cur.Name, len(used)),
				domain.ErrInUse)
		}
	}

	if err := uc.repo.UpdateCategory(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("nome", fmt.Sprintf("Categoria '%s' já existe", next.Name))
		}
		return nil, err
	}
	uc.lookups.Invalidate(keyCategories)

	rec := audit.NewRecorder(actingUser(in.User), time.Now())
	rec.Update(entity.AuditTableCategories, cur.ID, dto.NewCategoryResponse(cur), dto.NewCategoryResponse(&next))
	uc.sink.Emit(ctx, rec)

	out := dto.NewCategoryResponse(&next)
	return &out, nil
}

// UpdateUnit altera a unidade identificada pelo código. Trocar o código só é permitido
// enquanto nenhum brinde a usa.
func (uc *CatalogUseCase) UpdateUnit(ctx context.Context, code string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	in.Code = trimmed(in.Code)
	if in.Code != nil {
		*in.Code = strings.ToUpper(*in.Code)
	}
	in.Description = trimmed(in.Description)
	for _, err := range []error{
		validation.RequiredIfSet("codigo", "Código", in.Code),
		validation.RequiredIfSet("descricao", "Descrição", in.Description),
	} {
		if err != nil {
			return nil, err
		}
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListUnits(ctx, false)
	if err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	idx := slices.IndexFunc(list, func(u *entity.Unit) bool { return u.Code == code })
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	cur := list[idx]
	next := *cur
	if in.Code != nil {
		next.Code = *in.Code
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Active != nil {
		next.Active = *in.Active
	}
	if cur.Code != next.Code {
		used, err := uc.itemRepo.List(ctx, repository.ItemFilter{Unit: cur.Code})
		if err != nil {
			return nil, err
		}
		if len(used) > 0 {
			return nil, domain.NewBusinessRule(domain.CodeInUse,
				fmt.Sprintf("Não é possível alterar o código da unidade '%s': %d brinde(s) a utilizam", cur.Code, len(used)),
				domain.ErrInUse)
		}
	}

	if err := uc.repo.UpdateUnit(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("codigo", fmt.Sprintf("Unidade '%s' já existe", next.Code))
		}
		return nil, err
	}
	uc.lookups.Invalidate(keyUnits)

	rec := audit.NewRecorder(actingUser(in.User), time.Now())
	rec.Update(entity.AuditTableUnits, cur.ID, dto.NewUnitResponse(cur), dto.NewUnitResponse(&next))
	uc.sink.Emit(ctx, rec)

	out := dto.NewUnitResponse(&next)
	return &out, nil
}
