package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/application/validation"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	domaininv "github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// AllocationUseCase cadastra um brinde novo dividindo a quantidade total entre filiais.
// Todas as linhas criadas compartilham o mesmo LogicalID e nascem na mesma transação.
type AllocationUseCase struct {
	txRunner  TxRunner
	enums     Enumerations
	validator *validation.Validator
	sink      *audit.Sink
	log       *logger.Logger
}

// NewAllocationUseCase constrói o caso de uso.
func NewAllocationUseCase(
	txRunner TxRunner,
	enums Enumerations,
	validator *validation.Validator,
	sink *audit.Sink,
	log *logger.Logger,
) *AllocationUseCase {
	return &AllocationUseCase{
		txRunner:  txRunner,
		enums:     enums,
		validator: validator,
		sink:      sink,
		log:       log.Named("allocation"),
	}
}

// AllocateNewItem cria uma linha por filial com quantidade > 0. A soma das quantidades
// por filial precisa ser exatamente igual ao total; qualquer falha não deixa linhas criadas.
func (uc *AllocationUseCase) AllocateNewItem(ctx context.Context, in dto.AllocateItemRequest) (*dto.AllocationResponse, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	category, unit, err := resolveCategoryAndUnit(ctx, uc.enums, in.Category, in.Unit)
	if err != nil {
		return nil, err
	}
	branches, err := uc.enums.Branches(ctx)
	if err != nil {
		return nil, err
	}
	requested := make([]domaininv.BranchAllocation, 0, len(in.Allocations))
	for _, a := range in.Allocations {
		name, err := validation.Choice("filial", "Filial", a.Branch, branches)
		if err != nil {
			return nil, err
		}
		requested = append(requested, domaininv.BranchAllocation{Branch: name, Quantity: a.Quantity})
	}
	plan, err := domaininv.PlanAllocation(in.Total, requested)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := actingUser(in.User)
	logicalID := uuid.New().String()
	rec := audit.NewRecorder(user, now)
	var created []*entity.Item

	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.MovementRepository) error {
		rec.Reset()
		created = created[:0]
		codes, err := itemRepo.ListCodes(ctx)
		if err != nil {
			return err
		}
		for _, p := range plan {
			code := domaininv.NextCode(codes)
			codes = append(codes, code)
			item := &entity.Item{
				ID:             uuid.New().String(),
				Code:           code,
				LogicalID:      logicalID,
				Description:    in.Description,
				DescriptionKey: domaininv.DescriptionKey(in.Description),
				Category:       category,
				Unit:           unit,
				Branch:         p.Branch,
				Quantity:       p.Quantity,
				UnitPrice:      in.UnitPrice,
				Notes:          in.Notes,
				CreatedBy:      user,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := itemRepo.Create(ctx, item); err != nil {
				return fmt.Errorf("criar brinde na filial %s: %w", p.Branch, err)
			}
			rec.Insert(entity.AuditTableItems, item.ID, dto.NewItemResponse(item))
			created = append(created, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.sink.Emit(ctx, rec)

	out := &dto.AllocationResponse{LogicalID: logicalID, Items: make([]dto.ItemResponse, 0, len(created))}
	for _, item := range created {
		out.Items = append(out.Items, dto.NewItemResponse(item))
	}
	uc.log.Info().
		Str("logical_id", logicalID).
		Str("descricao", in.Description).
		Int64("quantidade_total", in.Total).
		Int("filiais", len(created)).
		Msg("brinde alocado")
	return out, nil
}

// resolveCategoryAndUnit confere categoria e unidade contra as opções ativas e devolve a grafia cadastrada.
func resolveCategoryAndUnit(ctx context.Context, enums Enumerations, category, unit string) (string, string, error) {
	categories, err := enums.Categories(ctx)
	if err != nil {
		return "", "", err
	}
	units, err := enums.Units(ctx)
	if err != nil {
		return "", "", err
	}
	c, err := validation.Choice("categoria", "Categoria", category, categories)
	if err != nil {
		return "", "", err
	}
	u, err := validation.Choice("unidade_medida", "Unidade de Medida", unit, units)
	if err != nil {
		return "", "", err
	}
	return c, u, nil
}
