package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/application/inventory"
	"github.com/brindez/controle-brindes/internal/application/usecase"
	"github.com/brindez/controle-brindes/internal/application/validation"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/internal/infrastructure/cache"
	"github.com/brindez/controle-brindes/internal/infrastructure/memory"
	"github.com/brindez/controle-brindes/internal/infrastructure/storage"
	"github.com/brindez/controle-brindes/pkg/logger"
)

const (
	matriz = "Matriz"
	filSP  = "Filial São Paulo"
	filRJ  = "Filial Rio de Janeiro"

	motivo = "Distribuição em evento corporativo"
)

type fixture struct {
	store    *memory.Store
	lookups  *usecase.LookupService
	items    *usecase.ItemUseCase
	ledger   *inventory.LedgerUseCase
	alloc    *inventory.AllocationUseCase
	transfer *inventory.TransferUseCase
}

// newFixture monta os casos de uso sobre um store em memória com os dados padrão.
// runner permite substituir o TxRunner (nil = o próprio store).
func newFixture(t *testing.T, runner func(*memory.Store) inventory.TxRunner) *fixture {
	t.Helper()
	st := memory.New()
	require.NoError(t, storage.Seed(context.Background(), st.Branches(), st.Catalog()))

	var tx inventory.TxRunner = st
	if runner != nil {
		tx = runner(st)
	}
	v := validation.New(10)
	lookups := usecase.NewLookupService(st.Branches(), st.Catalog(), cache.NewMemo(0))
	sink := audit.NewSink(st.Audit(), logger.Nop(), logger.Nop())
	log := logger.Nop()

	return &fixture{
		store:    st,
		lookups:  lookups,
		items:    usecase.NewItemUseCase(tx, st.Items(), lookups, v, sink, log),
		ledger:   inventory.NewLedgerUseCase(tx, st.Movements(), v, sink, log),
		alloc:    inventory.NewAllocationUseCase(tx, lookups, v, sink, log),
		transfer: inventory.NewTransferUseCase(tx, lookups, v, sink, log),
	}
}

func (f *fixture) allocate(t *testing.T, description string, total int64, shares ...dto.BranchAllocation) *dto.AllocationResponse {
	t.Helper()
	res, err := f.alloc.AllocateNewItem(context.Background(), dto.AllocateItemRequest{
		Description: description,
		Category:    "Canetas",
		Unit:        "UN",
		UnitPrice:   decimal.RequireFromString("2.50"),
		Total:       total,
		Allocations: shares,
		User:        "ana",
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) item(t *testing.T, id string) *entity.Item {
	t.Helper()
	it, err := f.store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it
}

func (f *fixture) movements(t *testing.T, itemID string) []*entity.Movement {
	t.Helper()
	list, err := f.store.Movements().List(context.Background(), repository.MovementFilter{ItemID: itemID})
	require.NoError(t, err)
	return list
}

func share(branch string, qty int64) dto.BranchAllocation {
	return dto.BranchAllocation{Branch: branch, Quantity: qty}
}

func byBranch(items []dto.ItemResponse, branch string) dto.ItemResponse {
	for _, it := range items {
		if it.Branch == branch {
			return it
		}
	}
	return dto.ItemResponse{}
}

// failingRunner executa no store real, mas a n-ésima gravação de movimentação falha.
type failingRunner struct {
	st     *memory.Store
	failOn int
}

var errDisco = errors.New("disco cheio")

func (r *failingRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	return r.st.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
		return fn(items, &failingMovements{MovementRepository: movs, failOn: r.failOn})
	})
}

type failingMovements struct {
	repository.MovementRepository
	failOn int
	calls  int
}

func (m *failingMovements) Create(ctx context.Context, mov *entity.Movement) error {
	m.calls++
	if m.calls == m.failOn {
		return errDisco
	}
	return m.MovementRepository.Create(ctx, mov)
}
