package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/application/analytics"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/infrastructure/memory"
	"github.com/brindez/controle-brindes/internal/infrastructure/storage"
)

func seedItems(t *testing.T, st *memory.Store, items ...entity.Item) {
	t.Helper()
	now := time.Now()
	for i := range items {
		it := items[i]
		it.ID = it.Code
		it.LogicalID = it.Code
		it.CreatedAt, it.UpdatedAt = now, now
		require.NoError(t, st.Items().Create(context.Background(), &it))
	}
}

func TestGetSummary(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	require.NoError(t, storage.Seed(ctx, st.Branches(), st.Catalog()))
	seedItems(t, st,
		entity.Item{Code: "001", Description: "Caneta Azul", Category: "Canetas", Unit: "UN", Branch: "Matriz",
			Quantity: 40, UnitPrice: decimal.RequireFromString("2.50")},
		entity.Item{Code: "002", Description: "Caneta Azul", Category: "Canetas", Unit: "UN", Branch: "Filial São Paulo",
			Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
		entity.Item{Code: "003", Description: "Chaveiro", Category: "Chaveiros", Unit: "UN", Branch: "Matriz",
			Quantity: 0, UnitPrice: decimal.RequireFromString("7.333")},
	)
	uc := analytics.NewDashboardUseCase(st.Items(), st.Catalog(), 5)

	t.Run("todas as filiais", func(t *testing.T) {
		s, err := uc.GetSummary(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 3, s.TotalItems)
		assert.Equal(t, int64(43), s.TotalUnits)
		assert.Equal(t, 6, s.Categories)
		assert.Equal(t, "107.5", s.TotalValue.String())

		require.Len(t, s.LowStock, 2)
		assert.Equal(t, "003", s.LowStock[0].Code)
		assert.Equal(t, "002", s.LowStock[1].Code)

		require.Len(t, s.ByBranch, 2)
		assert.Equal(t, "Filial São Paulo", s.ByBranch[0].Branch)
		assert.Equal(t, int64(3), s.ByBranch[0].Units)
		assert.Equal(t, "Matriz", s.ByBranch[1].Branch)
		assert.Equal(t, "100", s.ByBranch[1].TotalValue.String())
	})

	t.Run("uma filial", func(t *testing.T) {
		s, err := uc.GetSummary(ctx, " filial são paulo ")
		require.NoError(t, err)
		assert.Equal(t, "filial são paulo", s.Branch)
		assert.Equal(t, 1, s.TotalItems)
		assert.Equal(t, "7.5", s.TotalValue.String())
		require.Len(t, s.ByBranch, 1)
	})

	t.Run("sem brindes", func(t *testing.T) {
		s, err := uc.GetSummary(ctx, "Filial Belo Horizonte")
		require.NoError(t, err)
		assert.Zero(t, s.TotalItems)
		assert.True(t, s.TotalValue.IsZero())
		assert.Empty(t, s.LowStock)
		assert.Empty(t, s.ByBranch)
	})
}
