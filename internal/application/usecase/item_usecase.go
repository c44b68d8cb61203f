package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/application/inventory"
	"github.com/brindez/controle-brindes/internal/application/validation"
	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	domaininv "github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// ItemUseCase cadastro de brindes: criar, editar, excluir e consultar.
// A quantidade só é definida na criação; depois muda apenas pelo livro de estoque.
type ItemUseCase struct {
	txRunner  inventory.TxRunner
	itemRepo  repository.ItemRepository
	enums     inventory.Enumerations
	validator *validation.Validator
	sink      *audit.Sink
	log       *logger.Logger
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(
	txRunner inventory.TxRunner,
	itemRepo repository.ItemRepository,
	enums inventory.Enumerations,
	validator *validation.Validator,
	sink *audit.Sink,
	log *logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		enums:     enums,
		validator: validator,
		sink:      sink,
		log:       log.Named("items"),
	}
}

// Create cadastra um brinde em uma filial com id novo e o próximo código sequencial.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	category, unit, branch, err := uc.resolve(ctx, in.Category, in.Unit, in.Branch)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := actingUser(in.User)
	item := &entity.Item{
		ID:             uuid.New().String(),
		LogicalID:      uuid.New().String(),
		Description:    in.Description,
		DescriptionKey: domaininv.DescriptionKey(in.Description),
		Category:       category,
		Unit:           unit,
		Branch:         branch,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		Notes:          in.Notes,
		CreatedBy:      user,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	rec := audit.NewRecorder(user, now)
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.MovementRepository) error {
		rec.Reset()
		codes, err := itemRepo.ListCodes(ctx)
		if err != nil {
			return err
		}
		item.Code = domaininv.NextCode(codes)
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		rec.Insert(entity.AuditTableItems, item.ID, dto.NewItemResponse(item))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.sink.Emit(ctx, rec)
	uc.log.Info().Str("brinde_id", item.ID).Str("codigo", item.Code).Str("filial", item.Branch).Msg("brinde cadastrado")

	out := dto.NewItemResponse(item)
	return &out, nil
}

// Get devolve o brinde ou domain.ErrNotFound.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// List lista brindes filtrados, ordenados por código.
func (uc *ItemUseCase) List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error) {
	list, err := uc.itemRepo.List(ctx, repository.ItemFilter{
		Branch:   strings.TrimSpace(filter.Branch),
		Category: strings.TrimSpace(filter.Category),
		Unit:     strings.TrimSpace(filter.Unit),
		Search:   strings.TrimSpace(filter.Search),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.NewItemResponse(it))
	}
	return out, nil
}

// FindByDescriptionAndBranch busca pela descrição normalizada (sem diferenciar caixa
// nem espaços extras) na filial. Devolve nil quando não há correspondência.
func (uc *ItemUseCase) FindByDescriptionAndBranch(ctx context.Context, description, branch string) (*dto.ItemResponse, error) {
	key := domaininv.DescriptionKey(description)
	if key == "" || strings.TrimSpace(branch) == "" {
		return nil, domain.NewValidation("descricao", "Informe a descrição e a filial")
	}
	item, err := uc.itemRepo.FindByKeyAndBranch(ctx, key, branch)
	if err != nil || item == nil {
		return nil, err
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// Update substitui os campos descritivos informados. A quantidade nunca muda aqui.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		in.Description = &d
	}
	if in.Notes != nil {
		n := strings.TrimSpace(*in.Notes)
		in.Notes = &n
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	// enumerações resolvidas antes da transação
	if err := uc.resolveUpdate(ctx, &in); err != nil {
		return nil, err
	}

	now := time.Now()
	user := actingUser(in.User)
	rec := audit.NewRecorder(user, now)
	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.MovementRepository) error {
		rec.Reset()
		cur, err := itemRepo.GetByID(ctx, strings.TrimSpace(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		next := cur.Clone()
		if in.Description != nil {
			next.Description = *in.Description
			next.DescriptionKey = domaininv.DescriptionKey(*in.Description)
		}
		if in.Category != nil {
			next.Category = *in.Category
		}
		if in.Unit != nil {
			next.Unit = *in.Unit
		}
		if in.Branch != nil {
			next.Branch = *in.Branch
		}
		if in.UnitPrice != nil {
			next.UnitPrice = *in.UnitPrice
		}
		if in.Notes != nil {
			next.Notes = *in.Notes
		}
		next.UpdatedAt = now
		if err := itemRepo.Update(ctx, next); err != nil {
			return err
		}
		updated, err = itemRepo.GetByID(ctx, cur.ID)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		rec.Update(entity.AuditTableItems, cur.ID, dto.NewItemResponse(cur), dto.NewItemResponse(updated))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.sink.Emit(ctx, rec)
	uc.log.Info().Str("brinde_id", updated.ID).Msg("brinde atualizado")

	out := dto.NewItemResponse(updated)
	return &out, nil
}

// Delete exclui o brinde. Recusa com BusinessRuleError (ITEM_HAS_MOVEMENTS) quando
// alguma movimentação o referencia; não há exclusão em cascata.
func (uc *ItemUseCase) Delete(ctx context.Context, id, user string) error {
	id = strings.TrimSpace(id)
	user = actingUser(user)
	now := time.Now()
	rec := audit.NewRecorder(user, now)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		rec.Reset()
		cur, err := itemRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		has, err := movRepo.ExistsForItem(ctx, id)
		if err != nil {
			return err
		}
		if has {
			return domain.NewBusinessRule(domain.CodeItemHasMovements,
				"Não é possível excluir um brinde que possui movimentações registradas",
				domain.ErrItemHasMovements).WithDetail("brinde_id", id)
		}
		if err := itemRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("excluir brinde %s: %w", id, err)
		}
		rec.Delete(entity.AuditTableItems, id, dto.NewItemResponse(cur))
		return nil
	})
	if err != nil {
		return err
	}
	uc.sink.Emit(ctx, rec)
	uc.log.Info().Str("brinde_id", id).Str("usuario", user).Msg("brinde excluído")
	return nil
}

func (uc *ItemUseCase) resolve(ctx context.Context, category, unit, branch string) (string, string, string, error) {
	categories, err := uc.enums.Categories(ctx)
	if err != nil {
		return "", "", "", err
	}
	units, err := uc.enums.Units(ctx)
	if err != nil {
		return "", "", "", err
	}
	branches, err := uc.enums.Branches(ctx)
	if err != nil {
		return "", "", "", err
	}
	c, err := validation.Choice("categoria", "Categoria", category, categories)
	if err != nil {
		return "", "", "", err
	}
	u, err := validation.Choice("unidade_medida", "Unidade de Medida", unit, units)
	if err != nil {
		return "", "", "", err
	}
	b, err := validation.Choice("filial", "Filial", branch, branches)
	if err != nil {
		return "", "", "", err
	}
	return c, u, b, nil
}

// resolveUpdate troca os valores informados pela grafia cadastrada.
func (uc *ItemUseCase) resolveUpdate(ctx context.Context, in *dto.UpdateItemRequest) error {
	if in.Category != nil {
		categories, err := uc.enums.Categories(ctx)
		if err != nil {
			return err
		}
		c, err := validation.Choice("categoria", "Categoria", *in.Category, categories)
		if err != nil {
			return err
		}
		in.Category = &c
	}
	if in.Unit != nil {
		units, err := uc.enums.Units(ctx)
		if err != nil {
			return err
		}
		u, err := validation.Choice("unidade_medida", "Unidade de Medida", *in.Unit, units)
		if err != nil {
			return err
		}
		in.Unit = &u
	}
	if in.Branch != nil {
		branches, err := uc.enums.Branches(ctx)
		if err != nil {
			return err
		}
		b, err := validation.Choice("filial", "Filial", *in.Branch, branches)
		if err != nil {
			return err
		}
		in.Branch = &b
	}
	return nil
}

func actingUser(u string) string {
	if u = strings.TrimSpace(u); u != "" {
		return u
	}
	return inventory.SystemUser
}
