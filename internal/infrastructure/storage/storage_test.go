package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	domaininv "github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/internal/infrastructure/memory"
	"github.com/brindez/controle-brindes/internal/infrastructure/sqlite"
	"github.com/brindez/controle-brindes/internal/infrastructure/storage"
	"github.com/brindez/controle-brindes/pkg/config"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// backends os drivers que rodam sem serviço externo.
func backends(t *testing.T) map[string]func(t *testing.T) *storage.Backend {
	t.Helper()
	return map[string]func(t *testing.T) *storage.Backend{
		config.DriverMemory: func(t *testing.T) *storage.Backend {
			st := memory.New()
			return storage.FromProvider(config.DriverMemory, st, st.Close)
		},
		config.DriverSQLite: func(t *testing.T) *storage.Backend {
			db, err := sqlite.Open(":memory:", logger.Nop())
			require.NoError(t, err)
			return storage.FromProvider(config.DriverSQLite, db, db.Close)
		},
	}
}

func newItem(code, description, branch string, qty int64) *entity.Item {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Item{
		ID:             "id-" + code,
		Code:           code,
		LogicalID:      "logico-" + description,
		Description:    description,
		DescriptionKey: domaininv.DescriptionKey(description),
		Category:       "Canetas",
		Unit:           "UN",
		Branch:         branch,
		Quantity:       qty,
		UnitPrice:      decimal.RequireFromString("2.50"),
		CreatedBy:      "ana",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestSeed_Idempotente(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()

			require.NoError(t, storage.Seed(ctx, b.Branches, b.Catalog))
			require.NoError(t, storage.Seed(ctx, b.Branches, b.Catalog))

			branches, err := b.Branches.List(ctx, false)
			require.NoError(t, err)
			require.Len(t, branches, 4)
			assert.Equal(t, "Matriz", branches[0].Name)
			assert.True(t, branches[0].Active)

			cats, err := b.Catalog.ListCategories(ctx, true)
			require.NoError(t, err)
			assert.Len(t, cats, 6)

			units, err := b.Catalog.ListUnits(ctx, true)
			require.NoError(t, err)
			assert.Len(t, units, 7)

			require.NoError(t, storage.SeedDirectory(ctx, b.Suppliers, b.Users))
			require.NoError(t, storage.SeedDirectory(ctx, b.Suppliers, b.Users))
			suppliers, err := b.Suppliers.List(ctx, repository.SupplierFilter{})
			require.NoError(t, err)
			require.Len(t, suppliers, 3)
			assert.Equal(t, "FOR001", suppliers[0].Code)
			users, err := b.Users.List(ctx, false)
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, "admin", users[0].Username)
			assert.Equal(t, entity.ProfileAdmin, users[0].Profile)
		})
	}
}

func TestItems_Contrato(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()

			require.NoError(t, b.Items.Create(ctx, newItem("002", "Caneta Azul", "Matriz", 10)))
			require.NoError(t, b.Items.Create(ctx, newItem("001", "Caneta Azul", "Filial Sao Paulo", 4)))
			require.NoError(t, b.Items.Create(ctx, newItem("010", "Bloco", "Matriz", 0)))
			assert.ErrorIs(t, b.Items.Create(ctx, newItem("002", "Outro", "Matriz", 1)), domain.ErrDuplicate)

			missing, err := b.Items.GetByID(ctx, "nao-existe")
			require.NoError(t, err)
			assert.Nil(t, missing)

			all, err := b.Items.List(ctx, repository.ItemFilter{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"001", "002", "010"}, []string{all[0].Code, all[1].Code, all[2].Code})

			matriz, err := b.Items.List(ctx, repository.ItemFilter{Branch: "MATRIZ", Search: "caneta"})
			require.NoError(t, err)
			require.Len(t, matriz, 1)
			assert.Equal(t, "002", matriz[0].Code)
			assert.True(t, decimal.RequireFromString("2.5").Equal(matriz[0].UnitPrice))

			found, err := b.Items.FindByKeyAndBranch(ctx, "caneta azul", "filial sao paulo")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "001", found.Code)

			byLogical, err := b.Items.FindByLogicalIDAndBranch(ctx, "logico-Caneta Azul", "Matriz")
			require.NoError(t, err)
			require.NotNil(t, byLogical)
			assert.Equal(t, "id-002", byLogical.ID)

			codes, err := b.Items.ListCodes(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"001", "002", "010"}, codes)
		})
	}
}

func TestItems_BuscaTrataCuringasComoTexto(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()

			require.NoError(t, b.Items.Create(ctx, newItem("001", "Camiseta 100% algodão", "Matriz", 5)))
			require.NoError(t, b.Items.Create(ctx, newItem("002", "Camiseta 1000 algodão", "Matriz", 5)))
			require.NoError(t, b.Items.Create(ctx, newItem("003", "Bloco_A5", "Matriz", 5)))
			require.NoError(t, b.Items.Create(ctx, newItem("004", "BlocoXA5", "Matriz", 5)))
			require.NoError(t, b.Items.Create(ctx, newItem("005", `Pasta C:\docs`, "Matriz", 5)))

			codes := func(search string) []string {
				list, err := b.Items.List(ctx, repository.ItemFilter{Search: search})
				require.NoError(t, err)
				out := make([]string, 0, len(list))
				for _, it := range list {
					out = append(out, it.Code)
				}
				return out
			}

			assert.Equal(t, []string{"001"}, codes("100%"))
			assert.Equal(t, []string{"003"}, codes("bloco_a5"))
			assert.Equal(t, []string{"005"}, codes(`c:\docs`))
			assert.Empty(t, codes("%_"))
			assert.Len(t, codes("camiseta"), 2)
		})
	}
}

func TestItems_UpdatePreservaQuantidade(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			require.NoError(t, b.Items.Create(ctx, newItem("001", "Caneta", "Matriz", 7)))

			upd := newItem("001", "Caneta Gel", "Matriz", 999)
			upd.UpdatedAt = upd.UpdatedAt.Add(time.Hour)
			require.NoError(t, b.Items.Update(ctx, upd))

			got, err := b.Items.GetByID(ctx, "id-001")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Caneta Gel", got.Description)
			assert.Equal(t, int64(7), got.Quantity)

			assert.ErrorIs(t, b.Items.Update(ctx, newItem("404", "X", "Matriz", 0)), domain.ErrNotFound)
			require.NoError(t, b.Items.Delete(ctx, "id-001"))
			assert.ErrorIs(t, b.Items.Delete(ctx, "id-001"), domain.ErrNotFound)
		})
	}
}

func TestItems_AdjustQuantityCondicional(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			require.NoError(t, b.Items.Create(ctx, newItem("001", "Caneta", "Matriz", 5)))

			ok, err := b.Items.AdjustQuantity(ctx, "id-001", -6)
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = b.Items.AdjustQuantity(ctx, "id-001", -5)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = b.Items.AdjustQuantity(ctx, "nao-existe", 1)
			require.NoError(t, err)
			assert.False(t, ok)

			got, err := b.Items.GetByID(ctx, "id-001")
			require.NoError(t, err)
			assert.Zero(t, got.Quantity)
		})
	}
}

func TestMovements_OrdemELimite(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			require.NoError(t, b.Items.Create(ctx, newItem("001", "Caneta", "Matriz", 5)))

			base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
			add := func(id, kind string, at time.Time) {
				require.NoError(t, b.Movements.Create(ctx, &entity.Movement{
					ID: id, ItemID: "id-001", Type: kind, Quantity: 1, User: "ana", CreatedAt: at,
				}))
			}
			add("m1", entity.MovementTypeEntrada, base)
			add("m2", entity.MovementTypeSaida, base.Add(time.Minute))
			// mesmo instante: vence a inserção mais recente
			add("m3", entity.MovementTypeEntrada, base.Add(time.Minute))

			list, err := b.Movements.List(ctx, repository.MovementFilter{ItemID: "id-001"})
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, []string{"m3", "m2", "m1"}, []string{list[0].ID, list[1].ID, list[2].ID})

			limited, err := b.Movements.List(ctx, repository.MovementFilter{Type: entity.MovementTypeEntrada, Limit: 1})
			require.NoError(t, err)
			require.Len(t, limited, 1)
			assert.Equal(t, "m3", limited[0].ID)

			has, err := b.Movements.ExistsForItem(ctx, "id-001")
			require.NoError(t, err)
			assert.True(t, has)
			has, err = b.Movements.ExistsForItem(ctx, "id-002")
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestRun_DesfazEmCasoDeErro(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			require.NoError(t, b.Items.Create(ctx, newItem("001", "Caneta", "Matriz", 5)))

			err := b.TxRunner.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
				ok, err := items.AdjustQuantity(ctx, "id-001", -2)
				require.NoError(t, err)
				require.True(t, ok)
				require.NoError(t, movs.Create(ctx, &entity.Movement{
					ID: "m1", ItemID: "id-001", Type: entity.MovementTypeSaida, Quantity: 2, CreatedAt: time.Now(),
				}))
				return domain.ErrConcurrentUpdate
			})
			assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)

			got, err := b.Items.GetByID(ctx, "id-001")
			require.NoError(t, err)
			assert.Equal(t, int64(5), got.Quantity)
			has, err := b.Movements.ExistsForItem(ctx, "id-001")
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestBranchesECatalogo_Duplicados(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			require.NoError(t, storage.Seed(ctx, b.Branches, b.Catalog))

			err := b.Branches.Create(ctx, &entity.Branch{ID: "f5", Number: "005", Name: "MATRIZ", City: "X", Active: true})
			assert.ErrorIs(t, err, domain.ErrDuplicate)

			m, err := b.Branches.GetByName(ctx, "matriz")
			require.NoError(t, err)
			require.NotNil(t, m)
			m.Active = false
			require.NoError(t, b.Branches.Update(ctx, m))
			active, err := b.Branches.List(ctx, true)
			require.NoError(t, err)
			assert.Len(t, active, 3)

			none, err := b.Branches.GetByName(ctx, "Filial Recife")
			require.NoError(t, err)
			assert.Nil(t, none)

			err = b.Catalog.CreateCategory(ctx, &entity.Category{ID: "c7", Name: "canetas", Active: true})
			assert.ErrorIs(t, err, domain.ErrDuplicate)
			err = b.Catalog.CreateUnit(ctx, &entity.Unit{ID: "u8", Code: "un", Description: "Unidade", Active: true})
			assert.ErrorIs(t, err, domain.ErrDuplicate)

			require.NoError(t, b.Catalog.DeleteUnit(ctx, "cm"))
			assert.ErrorIs(t, b.Catalog.DeleteUnit(ctx, "cm"), domain.ErrNotFound)
		})
	}
}

func TestBranchesECatalogo_UpdateDuplicado(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			require.NoError(t, storage.Seed(ctx, b.Branches, b.Catalog))

			sp, err := b.Branches.GetByName(ctx, "Filial São Paulo")
			require.NoError(t, err)
			require.NotNil(t, sp)
			renamed := *sp
			renamed.Name = "MATRIZ"
			assert.ErrorIs(t, b.Branches.Update(ctx, &renamed), domain.ErrDuplicate)
			renamed.Name, renamed.Number = "Filial Paulista", "001"
			assert.ErrorIs(t, b.Branches.Update(ctx, &renamed), domain.ErrDuplicate)
			renamed.Number = sp.Number
			require.NoError(t, b.Branches.Update(ctx, &renamed))
			got, err := b.Branches.GetByName(ctx, "filial paulista")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, sp.ID, got.ID)

			cats, err := b.Catalog.ListCategories(ctx, false)
			require.NoError(t, err)
			require.Equal(t, "Blocos", cats[0].Name)
			c := *cats[0]
			c.Name = "CANETAS"
			assert.ErrorIs(t, b.Catalog.UpdateCategory(ctx, &c), domain.ErrDuplicate)
			c.Name, c.Active = "Papelaria", false
			require.NoError(t, b.Catalog.UpdateCategory(ctx, &c))
			active, err := b.Catalog.ListCategories(ctx, true)
			require.NoError(t, err)
			assert.Len(t, active, 5)
			assert.ErrorIs(t, b.Catalog.UpdateCategory(ctx, &entity.Category{ID: "nao-existe", Name: "Bonés"}), domain.ErrNotFound)

			units, err := b.Catalog.ListUnits(ctx, false)
			require.NoError(t, err)
			require.Equal(t, "CM", units[0].Code)
			u := *units[0]
			u.Code = "un"
			assert.ErrorIs(t, b.Catalog.UpdateUnit(ctx, &u), domain.ErrDuplicate)
			u.Code, u.Description = "GR", "Grama"
			require.NoError(t, b.Catalog.UpdateUnit(ctx, &u))
			units, err = b.Catalog.ListUnits(ctx, false)
			require.NoError(t, err)
			codes := make([]string, 0, len(units))
			for _, x := range units {
				codes = append(codes, x.Code)
			}
			assert.Contains(t, codes, "GR")
		})
	}
}

func TestSuppliers_Contrato(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

			for i, s := range []*entity.Supplier{
				{ID: "s1", Code: "FOR010", Name: "Papelaria 100% Central", ContactName: "Maria Santos", Active: true},
				{ID: "s2", Code: "FOR002", Name: "Brindes & Cia", ContactName: "João Silva", CNPJ: "12.345.678/0001-90", Active: true},
				{ID: "s3", Code: "FOR003", Name: "Tech Brindes", ContactName: "Pedro Oliveira", Active: false},
			} {
				s.CreatedBy = "ana"
				s.CreatedAt = now.Add(time.Duration(i) * time.Minute)
				s.UpdatedAt = s.CreatedAt
				require.NoError(t, b.Suppliers.Create(ctx, s))
			}
			err := b.Suppliers.Create(ctx, &entity.Supplier{ID: "s4", Code: "for002", Name: "Outro", Active: true})
			assert.ErrorIs(t, err, domain.ErrDuplicate)

			all, err := b.Suppliers.List(ctx, repository.SupplierFilter{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"FOR002", "FOR003", "FOR010"}, []string{all[0].Code, all[1].Code, all[2].Code})

			active, err := b.Suppliers.List(ctx, repository.SupplierFilter{ActiveOnly: true})
			require.NoError(t, err)
			assert.Len(t, active, 2)

			byContact, err := b.Suppliers.List(ctx, repository.SupplierFilter{Search: "JOÃO"})
			require.NoError(t, err)
			require.Len(t, byContact, 1)
			assert.Equal(t, "FOR002", byContact[0].Code)

			wildcard, err := b.Suppliers.List(ctx, repository.SupplierFilter{Search: "0%"})
			require.NoError(t, err)
			require.Len(t, wildcard, 1)
			assert.Equal(t, "FOR010", wildcard[0].Code)

			codes, err := b.Suppliers.ListCodes(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"FOR010", "FOR002", "FOR003"}, codes)

			got, err := b.Suppliers.GetByCode(ctx, "for002")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "12.345.678/0001-90", got.CNPJ)
			assert.True(t, got.CreatedAt.Equal(now.Add(time.Minute)))

			got.Name = "Brindes e Companhia"
			got.Active = false
			require.NoError(t, b.Suppliers.Update(ctx, got))
			got.Code = "FOR010"
			assert.ErrorIs(t, b.Suppliers.Update(ctx, got), domain.ErrDuplicate)
			renamed, err := b.Suppliers.List(ctx, repository.SupplierFilter{Search: "companhia"})
			require.NoError(t, err)
			require.Len(t, renamed, 1)
			assert.False(t, renamed[0].Active)

			require.NoError(t, b.Suppliers.Delete(ctx, "s3"))
			assert.ErrorIs(t, b.Suppliers.Delete(ctx, "s3"), domain.ErrNotFound)
			none, err := b.Suppliers.GetByCode(ctx, "FOR003")
			require.NoError(t, err)
			assert.Nil(t, none)
		})
	}
}

func TestUsers_Contrato(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

			for _, u := range []*entity.User{
				{ID: "u1", Username: "joana", Name: "Joana Lima", Branch: "Matriz", Profile: entity.ProfileManager, Active: true},
				{ID: "u2", Username: "carlos", Name: "Carlos Reis", Branch: "matriz", Profile: entity.ProfileUser, Active: true},
				{ID: "u3", Username: "bruno", Name: "Bruno Dias", Branch: "Filial São Paulo", Profile: entity.ProfileUser, Active: false},
			} {
				u.CreatedAt, u.UpdatedAt = now, now
				require.NoError(t, b.Users.Create(ctx, u))
			}
			err := b.Users.Create(ctx, &entity.User{ID: "u4", Username: "JOANA", Name: "Outra", Branch: "Matriz", Profile: entity.ProfileUser})
			assert.ErrorIs(t, err, domain.ErrDuplicate)

			all, err := b.Users.List(ctx, false)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "bruno", all[0].Username)
			active, err := b.Users.List(ctx, true)
			require.NoError(t, err)
			assert.Len(t, active, 2)

			n, err := b.Users.CountByBranch(ctx, "MATRIZ")
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			got, err := b.Users.GetByUsername(ctx, "Carlos")
			require.NoError(t, err)
			require.NotNil(t, got)
			got.Branch = "Filial São Paulo"
			got.Profile = entity.ProfileAdmin
			require.NoError(t, b.Users.Update(ctx, got))
			n, err = b.Users.CountByBranch(ctx, "Matriz")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			again, err := b.Users.GetByUsername(ctx, "carlos")
			require.NoError(t, err)
			assert.Equal(t, entity.ProfileAdmin, again.Profile)

			assert.ErrorIs(t, b.Users.Update(ctx, &entity.User{ID: "nao-existe", Username: "zeca", Profile: entity.ProfileUser}), domain.ErrNotFound)
			none, err := b.Users.GetByUsername(ctx, "zeca")
			require.NoError(t, err)
			assert.Nil(t, none)
		})
	}
}

func TestAudit_MaisRecentesPrimeiro(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			ctx := context.Background()
			at := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
			for i, action := range []string{entity.AuditActionInsert, entity.AuditActionUpdate} {
				require.NoError(t, b.Audit.Create(ctx, &entity.AuditRecord{
					ID: action, Table: entity.AuditTableItems, Action: action, RecordID: "id-001",
					After: []byte(`{"quantidade":1}`), UserID: "ana", Timestamp: at.Add(time.Duration(i) * time.Second),
				}))
			}
			recs, err := b.Audit.List(ctx, entity.AuditTableItems, "id-001", 0)
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, entity.AuditActionUpdate, recs[0].Action)
			assert.JSONEq(t, `{"quantidade":1}`, string(recs[0].After))
			assert.Nil(t, recs[0].Before)
		})
	}
}
