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
	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	domaininv "github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// SystemUser usuário gravado quando a operação não informa quem a executou.
const SystemUser = "sistema"

// LedgerUseCase registra entradas e saídas no livro de estoque. Cada movimento e o
// ajuste da quantidade do brinde acontecem na mesma transação.
type LedgerUseCase struct {
	txRunner  TxRunner
	movRepo   repository.MovementRepository
	validator *validation.Validator
	sink      *audit.Sink
	log       *logger.Logger
}

// NewLedgerUseCase constrói o caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	validator *validation.Validator,
	sink *audit.Sink,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		movRepo:   movRepo,
		validator: validator,
		sink:      sink,
		log:       log.Named("ledger"),
	}
}

// ApplyMovement aplica uma entrada ou saída. Tipos de transferência só são gerados por Transfer.
//
// Saída: exige justificativa e quantidade <= saldo; caso contrário devolve
// BusinessRuleError (INSUFFICIENT_STOCK) sem alterar nada.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in dto.MovementRequest) (*dto.MovementResult, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.Type = strings.TrimSpace(strings.ToLower(in.Type))
	in.Justification = strings.TrimSpace(in.Justification)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Destination = strings.TrimSpace(in.Destination)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.Type == entity.MovementTypeSaida {
		if err := uc.validator.Justification(in.Justification); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	user := actingUser(in.User)
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		TransactionID: uuid.New().String(),
		ItemID:        in.ItemID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		User:          user,
		Justification: in.Justification,
		Notes:         in.Notes,
		Destination:   in.Destination,
		CreatedAt:     now,
	}

	rec := audit.NewRecorder(user, now)
	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		rec.Reset()
		item, err := itemRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		updated, err = applyMovement(ctx, itemRepo, movRepo, item, mov, rec)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.sink.Emit(ctx, rec)

	uc.log.Info().
		Str("brinde_id", updated.ID).
		Str("filial", updated.Branch).
		Str("tipo", mov.Type).
		Int64("quantidade", mov.Quantity).
		Int64("saldo", updated.Quantity).
		Str("usuario", user).
		Msg("movimentação registrada")

	return &dto.MovementResult{
		Movement: dto.NewMovementResponse(mov),
		Item:     dto.NewItemResponse(updated),
	}, nil
}

// ListMovements lista o histórico, mais recentes primeiro.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, error) {
	filter.Type = strings.TrimSpace(strings.ToLower(filter.Type))
	if err := uc.validator.Struct(filter); err != nil {
		return nil, err
	}
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ItemID: strings.TrimSpace(filter.ItemID),
		Type:   filter.Type,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return out, nil
}

// applyMovement confere o saldo, aplica o delta de forma condicional e grava a linha do livro.
// Deve ser chamada dentro de TxRunner.Run. Devolve o brinde com a quantidade atualizada.
func applyMovement(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	item *entity.Item,
	mov *entity.Movement,
	rec *audit.Recorder,
) (*entity.Item, error) {
	if err := domaininv.CheckMovement(item.ID, item.Quantity, mov.Type, mov.Quantity); err != nil {
		return nil, err
	}

	// Decremento condicional: a condição quantidade+delta >= 0 é reavaliada na escrita.
	ok, err := itemRepo.AdjustQuantity(ctx, item.ID, mov.Delta())
	if err != nil {
		return nil, fmt.Errorf("ajustar quantidade do brinde %s: %w", item.ID, err)
	}
	if !ok {
		current, err := itemRepo.GetByID(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		if entity.IsOutbound(mov.Type) && mov.Quantity > current.Quantity {
			return nil, domain.NewInsufficientStock(item.ID, mov.Quantity, current.Quantity)
		}
		return nil, domain.ErrConcurrentUpdate
	}

	mov.ItemID = item.ID
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("gravar movimentação: %w", err)
	}

	updated, err := itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}

	rec.Insert(entity.AuditTableMovements, mov.ID, dto.NewMovementResponse(mov))
	rec.Update(entity.AuditTableItems, item.ID, dto.NewItemResponse(item), dto.NewItemResponse(updated))
	return updated, nil
}

func actingUser(u string) string {
	if u = strings.TrimSpace(u); u != "" {
		return u
	}
	return SystemUser
}
