package memory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/internal/infrastructure/memory"
)

func caneta() *entity.Item {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Item{
		ID: "b1", Code: "001", LogicalID: "l1", Description: "Caneta Azul", DescriptionKey: "caneta azul",
		Category: "Canetas", Unit: "UN", Branch: "Matriz", Quantity: 9,
		UnitPrice: decimal.RequireFromString("1.99"), CreatedAt: now, UpdatedAt: now,
	}
}

func TestOpen_PersisteEntreAberturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados", "mock.json")
	ctx := context.Background()

	st, err := memory.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Items().Create(ctx, caneta()))
	require.NoError(t, st.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
		if _, err := items.AdjustQuantity(ctx, "b1", -4); err != nil {
			return err
		}
		return movs.Create(ctx, &entity.Movement{
			ID: "m1", ItemID: "b1", Type: entity.MovementTypeSaida, Quantity: 4, CreatedAt: time.Now(),
		})
	}))
	require.NoError(t, st.Close())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "arquivo temporário não deve sobrar")

	again, err := memory.Open(path)
	require.NoError(t, err)
	got, err := again.Items().GetByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.Quantity)
	assert.True(t, decimal.RequireFromString("1.99").Equal(got.UnitPrice))
	has, err := again.Movements().ExistsForItem(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOpen_ArquivoAusenteOuInvalido(t *testing.T) {
	dir := t.TempDir()

	st, err := memory.Open(filepath.Join(dir, "nao-existe.json"))
	require.NoError(t, err)
	list, err := st.Items().List(context.Background(), repository.ItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	bad := filepath.Join(dir, "ruim.json")
	require.NoError(t, os.WriteFile(bad, []byte("{brindes"), 0o644))
	_, err = memory.Open(bad)
	assert.Error(t, err)
}

func TestRun_FalhaNaoGravaArquivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.json")
	ctx := context.Background()
	st, err := memory.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Items().Create(ctx, caneta()))

	boom := errors.New("falha")
	err = st.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository) error {
		_, _ = items.AdjustQuantity(ctx, "b1", 100)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	reopened, err := memory.Open(path)
	require.NoError(t, err)
	got, err := reopened.Items().GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Quantity)
}

func TestRun_ContextoCancelado(t *testing.T) {
	st := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := st.Run(ctx, func(repository.ItemRepository, repository.MovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
