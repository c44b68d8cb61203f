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

// SupplierUseCase cadastro de fornecedores.
type SupplierUseCase struct {
	repo      repository.SupplierRepository
	validator *validation.Validator
	sink      *audit.Sink
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, validator *validation.Validator, sink *audit.Sink) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, validator: validator, sink: sink}
}

// Create cadastra um fornecedor ativo. Sem código informado, gera o próximo FORnnn.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	cnpj, err := directory.NormalizeCNPJ(in.CNPJ)
	if err != nil {
		return nil, err
	}
	if in.Code == "" {
		codes, err := uc.repo.ListCodes(ctx)
		if err != nil {
			return nil, err
		}
		in.Code = directory.NextSupplierCode(codes)
	}

	now := time.Now()
	user := actingUser(in.User)
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		ContactName: in.ContactName,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		CNPJ:        cnpj,
		Notes:       in.Notes,
		Active:      true,
		CreatedBy:   user,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidation("codigo", fmt.Sprintf("Já existe um fornecedor com o código '%s'", s.Code))
		}
		return nil, err
	}

	rec := audit.NewRecorder(user, now)
	rec.Insert(entity.AuditTableSuppliers, s.ID, dto.NewSupplierResponse(s))
	uc.sink.Emit(ctx, rec)

	out := dto.NewSupplierResponse(s)
	return &out, nil
}

// List lista fornecedores ordenados pelo código; sem filter.All só os ativos.
func (uc *SupplierUseCase) List(ctx context.Context, filter dto.SupplierFilter) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, repository.SupplierFilter{
		Search:     strings.TrimSpace(filter.Search),
		ActiveOnly: !filter.All,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSupplierResponse(s))
	}
	return out, nil
}

// Get busca pelo código. Devolve domain.ErrNotFound se não existir.
func (uc *SupplierUseCase) Get(ctx context.Context, code string) (*dto.SupplierResponse, error) {
	s, err := uc.find(ctx, code)
	if err != nil {
		return nil, err
	}
	out := dto.NewSupplierResponse(s)
	return &out, nil
}

// Update altera os campos informados. O código não muda.
func (uc *SupplierUseCase) Update(ctx context.Context, code string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	for _, p := range []*string{in.Name, in.ContactName, in.Phone, in.Email, in.Address, in.City, in.ZipCode, in.Notes} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if in.State != nil {
		*in.State = strings.ToUpper(strings.TrimSpace(*in.State))
	}
	if err := validation.RequiredIfSet("nome", "Nome", in.Name); err != nil {
		return nil, err
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	cur, err := uc.find(ctx, code)
	if err != nil {
		return nil, err
	}
	next := *cur
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&next.Name, in.Name)
	set(&next.ContactName, in.ContactName)
	set(&next.Phone, in.Phone)
	set(&next.Email, in.Email)
	set(&next.Address, in.Address)
	set(&next.City, in.City)
	set(&next.State, in.State)
	set(&next.ZipCode, in.ZipCode)
	set(&next.Notes, in.Notes)
	if in.CNPJ != nil {
		if next.CNPJ, err = directory.NormalizeCNPJ(*in.CNPJ); err != nil {
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
	rec.Update(entity.AuditTableSuppliers, cur.ID, dto.NewSupplierResponse(cur), dto.NewSupplierResponse(&next))
	uc.sink.Emit(ctx, rec)

	out := dto.NewSupplierResponse(&next)
	return &out, nil
}

// SetActive ativa ou desativa o fornecedor.
func (uc *SupplierUseCase) SetActive(ctx context.Context, code string, active bool, user string) (*dto.SupplierResponse, error) {
	return uc.Update(ctx, code, dto.UpdateSupplierRequest{Active: &active, User: user})
}

// Delete remove o fornecedor definitivamente.
func (uc *SupplierUseCase) Delete(ctx context.Context, code, user string) error {
	cur, err := uc.find(ctx, code)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, cur.ID); err != nil {
		return err
	}
	rec := audit.NewRecorder(actingUser(user), time.Now())
	rec.Delete(entity.AuditTableSuppliers, cur.ID, dto.NewSupplierResponse(cur))
	uc.sink.Emit(ctx, rec)
	return nil
}

func (uc *SupplierUseCase) find(ctx context.Context, code string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}
