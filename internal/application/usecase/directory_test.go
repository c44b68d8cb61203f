package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestSupplier_CodigoGeradoECNPJ(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	a, err := s.suppliers.Create(ctx, dto.CreateSupplierRequest{
		Name: "  Brindes & Cia ", CNPJ: "12345678000190", State: "sp", User: "carla",
	})
	require.NoError(t, err)
	assert.Equal(t, "FOR001", a.Code)
	assert.Equal(t, "Brindes & Cia", a.Name)
	assert.Equal(t, "12.345.678/0001-90", a.CNPJ)
	assert.Equal(t, "SP", a.State)
	assert.Equal(t, "carla", a.CreatedBy)
	assert.True(t, a.Active)

	b, err := s.suppliers.Create(ctx, dto.CreateSupplierRequest{Code: "for010", Name: "Papelaria Central"})
	require.NoError(t, err)
	assert.Equal(t, "FOR010", b.Code)

	c, err := s.suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Tech Brindes"})
	require.NoError(t, err)
	assert.Equal(t, "FOR011", c.Code)

	_, err = s.suppliers.Create(ctx, dto.CreateSupplierRequest{Code: "FOR001", Name: "Outro"})
	assert.True(t, domain.IsValidation(err), "código repetido")

	for name, in := range map[string]dto.CreateSupplierRequest{
		"sem nome":        {Name: " "},
		"e-mail":          {Name: "Gráfica", Email: "grafica.com"},
		"uf":              {Name: "Gráfica", State: "SPA"},
		"cnpj incompleto": {Name: "Gráfica", CNPJ: "12.345.678/0001"},
	} {
		_, err := s.suppliers.Create(ctx, in)
		assert.True(t, domain.IsValidation(err), name)
	}
}

func TestSupplier_EditarDesativarExcluir(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	created, err := s.suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Brindes & Cia", ContactName: "João Silva"})
	require.NoError(t, err)
	_, err = s.suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Papelaria Central", ContactName: "Maria Santos"})
	require.NoError(t, err)

	updated, err := s.suppliers.Update(ctx, "for001", dto.UpdateSupplierRequest{
		Phone: ptr(" (11) 9999-0000 "), CNPJ: ptr("12.345.678/0001-90"), User: "carla",
	})
	require.NoError(t, err)
	assert.Equal(t, "(11) 9999-0000", updated.Phone)
	assert.Equal(t, "12.345.678/0001-90", updated.CNPJ)
	assert.Equal(t, "Brindes & Cia", updated.Name, "campos não informados não mudam")

	_, err = s.suppliers.Update(ctx, "FOR001", dto.UpdateSupplierRequest{Name: ptr("  ")})
	assert.True(t, domain.IsValidation(err))

	found, err := s.suppliers.List(ctx, dto.SupplierFilter{Search: "maria"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "FOR002", found[0].Code)

	off, err := s.suppliers.SetActive(ctx, "FOR002", false, "carla")
	require.NoError(t, err)
	assert.False(t, off.Active)

	active, err := s.suppliers.List(ctx, dto.SupplierFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	all, err := s.suppliers.List(ctx, dto.SupplierFilter{All: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.suppliers.Delete(ctx, "FOR001", "carla"))
	_, err = s.suppliers.Get(ctx, "FOR001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.suppliers.Delete(ctx, "FOR001", "carla"), domain.ErrNotFound)

	trail, err := s.store.Audit().List(ctx, entity.AuditTableSuppliers, created.ID, 0)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	actions := []string{trail[0].Action, trail[1].Action, trail[2].Action}
	assert.ElementsMatch(t, []string{entity.AuditActionInsert, entity.AuditActionUpdate, entity.AuditActionDelete}, actions)
}

func TestUser_CadastroLotacaoEPerfil(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	u, err := s.users.Create(ctx, dto.CreateUserRequest{
		Username: " Joana.Silva ", Name: "Joana Silva", Branch: "matriz", Profile: "gestor",
	})
	require.NoError(t, err)
	assert.Equal(t, "joana.silva", u.Username)
	assert.Equal(t, "Matriz", u.Branch)
	assert.Equal(t, entity.ProfileManager, u.Profile)
	assert.True(t, u.Active)

	for name, in := range map[string]dto.CreateUserRequest{
		"repetido":         {Username: "JOANA.SILVA", Name: "Outra Joana", Branch: "Matriz", Profile: "Usuario"},
		"filial":           {Username: "pedro", Name: "Pedro Lima", Branch: "Filial Recife", Profile: "Usuario"},
		"perfil":           {Username: "pedro", Name: "Pedro Lima", Branch: "Matriz", Profile: "Diretor"},
		"username":         {Username: "pedro lima", Name: "Pedro Lima", Branch: "Matriz", Profile: "Usuario"},
		"nome muito curto": {Username: "pedro", Name: "Pe", Branch: "Matriz", Profile: "Usuario"},
	} {
		_, err := s.users.Create(ctx, in)
		assert.True(t, domain.IsValidation(err), name)
	}

	moved, err := s.users.Update(ctx, "joana.silva", dto.UpdateUserRequest{Branch: ptr("filial são paulo"), Profile: ptr("ADMIN")})
	require.NoError(t, err)
	assert.Equal(t, "Filial São Paulo", moved.Branch)
	assert.Equal(t, entity.ProfileAdmin, moved.Profile)

	_, err = s.branches.SetActive(ctx, "Filial Rio de Janeiro", false, "carla")
	require.NoError(t, err)
	_, err = s.users.Update(ctx, "joana.silva", dto.UpdateUserRequest{Branch: ptr("Filial Rio de Janeiro")})
	assert.True(t, domain.IsValidation(err), "filial inativa não recebe usuários")

	_, err = s.users.SetActive(ctx, "joana.silva", false, "carla")
	require.NoError(t, err)
	active, err := s.users.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = s.users.Get(ctx, "pedro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBranchUpdate_RenomearSoSemVinculos(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	bh, err := s.branches.Update(ctx, "filial belo horizonte", dto.UpdateBranchRequest{
		Name: ptr("Filial BH"), Phone: ptr("(31) 0000-0000"), User: "carla",
	})
	require.NoError(t, err)
	assert.Equal(t, "Filial BH", bh.Name)
	assert.Equal(t, "004", bh.Number)

	// o novo nome já vale para novos brindes
	s.create(t, "Caneta Azul", "Filial BH", 3)

	_, err = s.branches.Update(ctx, "Filial BH", dto.UpdateBranchRequest{Name: ptr("Filial Belo Horizonte")})
	assert.ErrorIs(t, err, domain.ErrInUse, "brinde vinculado")

	_, err = s.users.Create(ctx, dto.CreateUserRequest{Username: "rui", Name: "Rui Souza", Branch: "Filial Rio de Janeiro", Profile: "Usuario"})
	require.NoError(t, err)
	_, err = s.branches.Update(ctx, "Filial Rio de Janeiro", dto.UpdateBranchRequest{Name: ptr("Filial RJ")})
	assert.ErrorIs(t, err, domain.ErrInUse, "usuário lotado")

	// dados que não são o nome mudam mesmo com vínculos
	_, err = s.branches.Update(ctx, "Filial BH", dto.UpdateBranchRequest{City: ptr("Contagem")})
	require.NoError(t, err)

	_, err = s.branches.Update(ctx, "Filial São Paulo", dto.UpdateBranchRequest{Number: ptr("001")})
	assert.True(t, domain.IsValidation(err), "número de outra filial")
	_, err = s.branches.Update(ctx, "Filial São Paulo", dto.UpdateBranchRequest{City: ptr("")})
	assert.True(t, domain.IsValidation(err), "cidade vazia")
	_, err = s.branches.Update(ctx, "Filial Recife", dto.UpdateBranchRequest{City: ptr("Recife")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogUpdate_CategoriaEUnidade(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	s.create(t, "Caneta Azul", "Matriz", 1)

	c, err := s.catalog.UpdateCategory(ctx, "outros", dto.UpdateCategoryRequest{Name: ptr("Diversos")})
	require.NoError(t, err)
	assert.Equal(t, "Diversos", c.Name)
	_, err = s.items.Create(ctx, dto.CreateItemRequest{
		Description: "Adesivo", Category: "diversos", Unit: "UN", Branch: "Matriz",
	})
	require.NoError(t, err, "lista de categorias invalidada após a edição")

	_, err = s.catalog.UpdateCategory(ctx, "Canetas", dto.UpdateCategoryRequest{Name: ptr("Canetas Esferográficas")})
	assert.ErrorIs(t, err, domain.ErrInUse)
	desc, err := s.catalog.UpdateCategory(ctx, "Canetas", dto.UpdateCategoryRequest{Description: ptr("Canetas personalizadas")})
	require.NoError(t, err)
	assert.Equal(t, "Canetas personalizadas", desc.Description)
	_, err = s.catalog.UpdateCategory(ctx, "Blocos", dto.UpdateCategoryRequest{Name: ptr("chaveiros")})
	assert.True(t, domain.IsValidation(err))
	_, err = s.catalog.UpdateCategory(ctx, "Bonés", dto.UpdateCategoryRequest{Description: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u, err := s.catalog.UpdateUnit(ctx, "mt", dto.UpdateUnitRequest{Code: ptr("m"), Description: ptr("Metro linear")})
	require.NoError(t, err)
	assert.Equal(t, "M", u.Code)
	assert.Equal(t, "Metro linear", u.Description)

	_, err = s.catalog.UpdateUnit(ctx, "UN", dto.UpdateUnitRequest{Code: ptr("UND")})
	assert.ErrorIs(t, err, domain.ErrInUse)
	_, err = s.catalog.UpdateUnit(ctx, "KG", dto.UpdateUnitRequest{Code: ptr("cx")})
	assert.True(t, domain.IsValidation(err))
	off, err := s.catalog.UpdateUnit(ctx, "LT", dto.UpdateUnitRequest{Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, off.Active)

	units, err := s.catalog.ListUnits(ctx, true)
	require.NoError(t, err)
	for _, un := range units {
		assert.NotEqual(t, "LT", un.Code)
	}
}
