package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/pkg/config"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("pgx5://u@h/db"))
}

func TestMigrations_Embutidas(t *testing.T) {
	up, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
	assert.Contains(t, up, "migrations/000002_fornecedores_usuarios.up.sql")
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	dup := fmt.Errorf("inserir: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, translate(dup), domain.ErrDuplicate)

	other := &pgconn.PgError{Code: "23514"}
	assert.Same(t, error(other), translate(other))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

// TestStore_Integracao roda contra um PostgreSQL real quando BRINDES_TEST_DATABASE_URL está definida.
func TestStore_Integracao(t *testing.T) {
	url := os.Getenv("BRINDES_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BRINDES_TEST_DATABASE_URL não definida")
	}
	ctx := context.Background()
	require.NoError(t, Migrate(url))
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	defer pool.Close()
	st := NewStore(pool)

	suffix := fmt.Sprint(time.Now().UnixNano())
	now := time.Now().UTC()
	item := &entity.Item{
		ID: "it-" + suffix, Code: "T" + suffix, LogicalID: "lg-" + suffix,
		Description: "Caneta Teste", DescriptionKey: "caneta teste", Category: "Canetas", Unit: "UN",
		Branch: "Matriz", Quantity: 3, UnitPrice: decimal.RequireFromString("1.10"), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Items().Create(ctx, item))
	t.Cleanup(func() { _ = st.Items().Delete(ctx, item.ID) })
	t.Cleanup(func() { _, _ = pool.Exec(ctx, "DELETE FROM movimentacoes WHERE brinde_id = $1", item.ID) })

	err = st.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
		ok, err := items.AdjustQuantity(ctx, item.ID, -3)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, movs.Create(ctx, &entity.Movement{
			ID: "mv-" + suffix, ItemID: item.ID, Type: entity.MovementTypeSaida, Quantity: 3, CreatedAt: now,
		}))
		return domain.ErrConcurrentUpdate
	})
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	got, err := st.Items().GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.Quantity)
	assert.True(t, decimal.RequireFromString("1.10").Equal(got.UnitPrice))

	ok, err := st.Items().AdjustQuantity(ctx, item.ID, -4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiretorio_Integracao(t *testing.T) {
	url := os.Getenv("BRINDES_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BRINDES_TEST_DATABASE_URL não definida")
	}
	ctx := context.Background()
	require.NoError(t, Migrate(url))
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	defer pool.Close()
	st := NewStore(pool)

	suffix := fmt.Sprint(time.Now().UnixNano())
	now := time.Now().UTC()
	sup := &entity.Supplier{
		ID: "sp-" + suffix, Code: "T" + suffix, Name: "Gráfica 50% Off", ContactName: "Rita",
		Active: true, CreatedBy: "ana", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Suppliers().Create(ctx, sup))
	t.Cleanup(func() { _ = st.Suppliers().Delete(ctx, sup.ID) })
	err = st.Suppliers().Create(ctx, &entity.Supplier{ID: "sp2-" + suffix, Code: "t" + suffix, Name: "Outra", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := st.Suppliers().List(ctx, repository.SupplierFilter{Search: "50% off"})
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, sup.Code, found[0].Code)

	u := &entity.User{
		ID: "us-" + suffix, Username: "u" + suffix, Name: "Teste", Branch: "Filial " + suffix,
		Profile: entity.ProfileUser, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Users().Create(ctx, u))
	t.Cleanup(func() { _, _ = pool.Exec(ctx, "DELETE FROM usuarios WHERE id = $1", u.ID) })
	n, err := st.Users().CountByBranch(ctx, "FILIAL "+suffix)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
