package inventory

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
	"github.com/brindez/controle-brindes/pkg/logger"
)

// TransferStage etapa alcançada por uma transferência.
type TransferStage string

// Etapas, em ordem.
const (
	StageRequested           TransferStage = "solicitada"
	StageSourceDebited       TransferStage = "origem_debitada"
	StageDestinationResolved TransferStage = "destino_resolvido"
	StageDestinationCredited TransferStage = "destino_creditado"
)

// TransferError indica em que etapa a transferência falhou. Como tudo roda em uma
// transação, nenhuma etapa anterior permanece gravada.
type TransferError struct {
	Stage TransferStage
	Err   error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transferência interrompida (%s): %v", e.Stage, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// TransferUseCase move quantidade de um brinde para outra filial: debita a origem,
// localiza ou cria o brinde no destino e credita o destino, tudo em uma transação.
type TransferUseCase struct {
	txRunner  TxRunner
	enums     Enumerations
	validator *validation.Validator
	sink      *audit.Sink
	log       *logger.Logger
}

// NewTransferUseCase constrói o caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	enums Enumerations,
	validator *validation.Validator,
	sink *audit.Sink,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:  txRunner,
		enums:     enums,
		validator: validator,
		sink:      sink,
		log:       log.Named("transfer"),
	}
}

// Transfer executa a transferência completa ou nada.
//
// Erros: ValidationError (quantidade, justificativa, filial inexistente ou inativa),
// BusinessRuleError SAME_BRANCH ou INSUFFICIENT_STOCK, domain.ErrNotFound.
// Erros ocorridos dentro da transação vêm embrulhados em *TransferError.
func (uc *TransferUseCase) Transfer(ctx context.Context, in dto.TransferRequest) (*dto.TransferResponse, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.DestinationBranch = strings.TrimSpace(in.DestinationBranch)
	in.Justification = strings.TrimSpace(in.Justification)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.validator.Justification(in.Justification); err != nil {
		return nil, err
	}
	branches, err := uc.enums.Branches(ctx)
	if err != nil {
		return nil, err
	}
	destBranch, err := validation.Choice("filial_destino", "Filial de Destino", in.DestinationBranch, branches)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := actingUser(in.User)
	txID := uuid.New().String()
	rec := audit.NewRecorder(user, now)
	log := uc.log.With().Str("transacao_id", txID).Str("brinde_id", in.ItemID).Logger()

	var (
		out, inMov          *entity.Movement
		source, destination *entity.Item
		created             bool
	)

	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		rec.Reset()
		created = false
		stage := StageRequested
		fail := func(err error) error {
			log.Debug().Str("etapa", string(stage)).Err(err).Msg("transferência desfeita")
			return &TransferError{Stage: stage, Err: err}
		}
		log.Debug().Str("etapa", string(stage)).Str("filial_destino", destBranch).Int64("quantidade", in.Quantity).Msg("transferência")

		src, err := itemRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return fail(err)
		}
		if src == nil {
			return fail(domain.ErrNotFound)
		}
		if domaininv.SameBranch(src.Branch, destBranch) {
			return fail(domain.NewBusinessRule(domain.CodeSameBranch,
				"A filial de destino deve ser diferente da filial de origem", domain.ErrSameBranch).
				WithDetail("filial", src.Branch))
		}

		// Etapa 1: débito na origem.
		out = &entity.Movement{
			ID:                uuid.New().String(),
			TransactionID:     txID,
			Type:              entity.MovementTypeTransferenciaSaida,
			Quantity:          in.Quantity,
			User:              user,
			Justification:     in.Justification,
			Notes:             in.Notes,
			Destination:       destBranch,
			OriginBranch:      src.Branch,
			DestinationBranch: destBranch,
			CreatedAt:         now,
		}
		source, err = applyMovement(ctx, itemRepo, movRepo, src, out, rec)
		if err != nil {
			return fail(err)
		}
		stage = StageSourceDebited
		log.Debug().Str("etapa", string(stage)).Int64("saldo_origem", source.Quantity).Msg("transferência")

		// Etapa 2: localizar ou criar o brinde no destino.
		dst, isNew, err := findOrCreateDestination(ctx, itemRepo, source, destBranch, user, now)
		if err != nil {
			return fail(err)
		}
		created = isNew
		if isNew {
			rec.Insert(entity.AuditTableItems, dst.ID, dto.NewItemResponse(dst))
		}
		stage = StageDestinationResolved
		log.Debug().Str("etapa", string(stage)).Str("destino_id", dst.ID).Bool("criado", isNew).Msg("transferência")

		// Etapa 3: crédito no destino.
		inMov = &entity.Movement{
			ID:                uuid.New().String(),
			TransactionID:     txID,
			Type:              entity.MovementTypeTransferenciaEntrada,
			Quantity:          in.Quantity,
			User:              user,
			Justification:     in.Justification,
			Notes:             in.Notes,
			OriginBranch:      source.Branch,
			DestinationBranch: destBranch,
			CreatedAt:         now,
		}
		destination, err = applyMovement(ctx, itemRepo, movRepo, dst, inMov, rec)
		if err != nil {
			return fail(err)
		}
		stage = StageDestinationCredited
		log.Debug().Str("etapa", string(stage)).Int64("saldo_destino", destination.Quantity).Msg("transferência")
		return nil
	})
	if err != nil {
		var te *TransferError
		if !errors.As(err, &te) {
			// Falha no commit: a transação inteira foi descartada.
			err = &TransferError{Stage: StageDestinationCredited, Err: err}
		}
		return nil, err
	}
	uc.sink.Emit(ctx, rec)

	log.Info().
		Str("origem", source.Branch).
		Str("destino", destination.Branch).
		Int64("quantidade", in.Quantity).
		Bool("destino_criado", created).
		Msg("transferência concluída")

	return &dto.TransferResponse{
		TransactionID:      txID,
		Out:                dto.NewMovementResponse(out),
		In:                 dto.NewMovementResponse(inMov),
		Source:             dto.NewItemResponse(source),
		Destination:        dto.NewItemResponse(destination),
		DestinationCreated: created,
	}, nil
}

// findOrCreateDestination procura o mesmo brinde lógico na filial de destino; se não houver,
// tenta pela descrição normalizada e, por fim, cria a linha com quantidade zero copiando
// categoria, unidade e valor da origem.
func findOrCreateDestination(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	source *entity.Item,
	branch, user string,
	now time.Time,
) (*entity.Item, bool, error) {
	if source.LogicalID != "" {
		dst, err := itemRepo.FindByLogicalIDAndBranch(ctx, source.LogicalID, branch)
		if err != nil {
			return nil, false, err
		}
		if dst != nil {
			return dst, false, nil
		}
	}
	dst, err := itemRepo.FindByKeyAndBranch(ctx, domaininv.DescriptionKey(source.Description), branch)
	if err != nil {
		return nil, false, err
	}
	if dst != nil {
		return dst, false, nil
	}

	codes, err := itemRepo.ListCodes(ctx)
	if err != nil {
		return nil, false, err
	}
	logicalID := source.LogicalID
	if logicalID == "" {
		logicalID = uuid.New().String()
	}
	dst = &entity.Item{
		ID:             uuid.New().String(),
		Code:           domaininv.NextCode(codes),
		LogicalID:      logicalID,
		Description:    source.Description,
		DescriptionKey: domaininv.DescriptionKey(source.Description),
		Category:       source.Category,
		Unit:           source.Unit,
		Branch:         branch,
		Quantity:       0,
		UnitPrice:      source.UnitPrice,
		Notes:          "Criado automaticamente por transferência da filial " + source.Branch,
		CreatedBy:      user,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := itemRepo.Create(ctx, dst); err != nil {
		return nil, false, fmt.Errorf("criar brinde na filial %s: %w", branch, err)
	}
	return dst, true, nil
}
