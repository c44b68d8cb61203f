package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/infrastructure/memory"
	"github.com/brindez/controle-brindes/internal/infrastructure/storage"
	"github.com/brindez/controle-brindes/internal/interfaces/cli"
	"github.com/brindez/controle-brindes/pkg/config"
)

func newDeps(t *testing.T) cli.Deps {
	t.Helper()
	st := memory.New()
	b := storage.FromProvider(config.DriverMemory, st, st.Close)
	require.NoError(t, storage.Seed(context.Background(), b.Branches, b.Catalog))
	cfg := &config.Config{
		Rules: config.RulesConfig{JustificationMinLength: 10, StockMinimum: 5},
		Cache: config.CacheConfig{TTL: time.Minute},
	}
	return cli.NewDeps(b, cfg, "joana", nil, nil)
}

// run executa a CLI com uma árvore nova de comandos, como o binário faz a cada chamada.
func run(t *testing.T, deps cli.Deps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmd(deps)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, deps cli.Deps, args ...string) string {
	t.Helper()
	out, err := run(t, deps, args...)
	require.NoError(t, err, "brindes %v", args)
	return out
}

func TestCLI_CicloCompleto(t *testing.T) {
	deps := newDeps(t)

	out := mustRun(t, deps, "itens", "criar", "-d", "Caneta Azul", "-c", "canetas", "-f", "Matriz", "-q", "10", "-v", "2,50")
	assert.Equal(t, "Brinde 001 cadastrado na filial Matriz\n", out)

	out = mustRun(t, deps, "estoque", "saida", "001", "-q", "3", "-j", "Evento de fim de ano", "--destino", "Clientes")
	assert.Equal(t, "Saída de 3 registrada. Brinde 001 (Matriz): saldo 7\n", out)

	out = mustRun(t, deps, "estoque", "transferir", "001", "-q", "2", "-p", "filial são paulo", "-j", "Reposição da filial")
	assert.Contains(t, out, "2 unidade(s) de Matriz para Filial São Paulo")
	assert.Contains(t, out, "origem  001 (Matriz): saldo 5")
	assert.Contains(t, out, "destino 002 (Filial São Paulo): saldo 2")
	assert.Contains(t, out, "criado automaticamente")

	out = mustRun(t, deps, "itens", "listar", "--json")
	var items []dto.ItemResponse
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, items[0].LogicalID, items[1].LogicalID)
	assert.Equal(t, "joana", items[0].CreatedBy)

	out = mustRun(t, deps, "movimentacoes", "--brinde", "001", "--json")
	var movs []dto.MovementResponse
	require.NoError(t, json.Unmarshal([]byte(out), &movs))
	require.Len(t, movs, 2)
	assert.Equal(t, "transferencia_saida", movs[0].Type)
	assert.Equal(t, "saida", movs[1].Type)

	out = mustRun(t, deps, "painel")
	assert.Contains(t, out, "R$ 17,50")

	out = mustRun(t, deps, "auditoria", "--json", "-n", "1")
	var recs []dto.AuditResponse
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
}

func TestCLI_Alocar(t *testing.T) {
	deps := newDeps(t)

	out := mustRun(t, deps, "itens", "alocar", "-d", "Chaveiro Metal", "-c", "Chaveiros", "--total", "10",
		"--filial", "Matriz=6", "--filial", "Filial Rio de Janeiro=4")
	assert.Contains(t, out, "Matriz")
	assert.Contains(t, out, "Filial Rio de Janeiro")

	_, err := run(t, deps, "itens", "alocar", "-d", "Chaveiro Metal", "-c", "Chaveiros", "--total", "10",
		"--filial", "Matriz=3")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = run(t, deps, "itens", "alocar", "-d", "Chaveiro", "-c", "Chaveiros", "--total", "1", "--filial", "Matriz")
	require.Error(t, err)
	assert.Equal(t, `Alocação inválida "Matriz": use Filial=quantidade`, cli.Message(err))
}

func TestCLI_Erros(t *testing.T) {
	deps := newDeps(t)
	mustRun(t, deps, "itens", "criar", "-d", "Caneta Azul", "-c", "Canetas", "-f", "Matriz", "-q", "1")

	_, err := run(t, deps, "estoque", "saida", "001", "-q", "5", "-j", "Evento de fim de ano")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Quantidade solicitada (5) é maior que o estoque disponível (1)", cli.Message(err))

	_, err = run(t, deps, "estoque", "entrada", "999", "-q", "1")
	require.Error(t, err)
	assert.Equal(t, "Registro não encontrado", cli.Message(err))

	mustRun(t, deps, "estoque", "entrada", "001", "-q", "1")
	_, err = run(t, deps, "itens", "excluir", "001")
	require.Error(t, err)
	assert.Equal(t, "Não é possível excluir um brinde que possui movimentações registradas", cli.Message(err))
}

func TestCLI_EditarNaoMudaQuantidade(t *testing.T) {
	deps := newDeps(t)
	mustRun(t, deps, "itens", "criar", "-d", "Bloco A5", "-c", "Blocos", "-f", "Matriz", "-q", "4")

	out := mustRun(t, deps, "itens", "editar", "001", "-d", "Bloco A5 Pautado", "-v", "3.10")
	assert.Equal(t, "Brinde 001 atualizado\n", out)

	out = mustRun(t, deps, "itens", "ver", "001", "--json")
	var it dto.ItemResponse
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	assert.Equal(t, "Bloco A5 Pautado", it.Description)
	assert.Equal(t, int64(4), it.Quantity)
	assert.Equal(t, "3.1", it.UnitPrice.String())
}

func TestCLI_Filiais(t *testing.T) {
	deps := newDeps(t)
	mustRun(t, deps, "filiais", "desativar", "Filial Belo Horizonte")

	out := mustRun(t, deps, "filiais", "listar")
	assert.NotContains(t, out, "Belo Horizonte")
	out = mustRun(t, deps, "filiais", "listar", "--todas")
	assert.Contains(t, out, "Belo Horizonte")

	_, err := run(t, deps, "itens", "criar", "-d", "Caneta", "-c", "Canetas", "-f", "Filial Belo Horizonte")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCLI_FornecedoresEUsuarios(t *testing.T) {
	deps := newDeps(t)

	out := mustRun(t, deps, "fornecedores", "criar", "--nome", "Brindes & Cia", "--contato", "João Silva", "--cnpj", "12345678000190")
	assert.Equal(t, "Fornecedor FOR001 - Brindes & Cia cadastrado\n", out)
	mustRun(t, deps, "fornecedores", "editar", "for001", "--telefone", "(11) 1234-5678")

	out = mustRun(t, deps, "fornecedores", "mostrar", "FOR001")
	assert.Contains(t, out, "12.345.678/0001-90")
	assert.Contains(t, out, "(11) 1234-5678")

	out = mustRun(t, deps, "fornecedores", "desativar", "FOR001")
	assert.Equal(t, "Fornecedor FOR001 agora está inativo\n", out)
	out = mustRun(t, deps, "fornecedores", "listar")
	assert.NotContains(t, out, "FOR001")
	out = mustRun(t, deps, "fornecedores", "listar", "--todos", "-b", "joão")
	assert.Contains(t, out, "Brindes & Cia")

	mustRun(t, deps, "fornecedores", "excluir", "FOR001")
	_, err := run(t, deps, "fornecedores", "mostrar", "FOR001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out = mustRun(t, deps, "usuarios", "criar", "--login", "Ana.Lima", "--nome", "Ana Lima", "-f", "matriz", "--perfil", "gestor")
	assert.Equal(t, "Usuário ana.lima cadastrado (Gestor, Matriz)\n", out)
	_, err = run(t, deps, "filiais", "editar", "Matriz", "--nome", "Sede")
	assert.ErrorIs(t, err, domain.ErrInUse)

	mustRun(t, deps, "usuarios", "editar", "ana.lima", "-f", "Filial São Paulo")
	out = mustRun(t, deps, "filiais", "editar", "Matriz", "--nome", "Sede")
	assert.Equal(t, "Filial 001 - Sede atualizada\n", out)

	out = mustRun(t, deps, "categorias", "editar", "outros", "--nome", "Diversos")
	assert.Equal(t, "Categoria Diversos atualizada\n", out)
	out = mustRun(t, deps, "unidades", "editar", "lt", "--ativa=false")
	assert.Equal(t, "Unidade LT atualizada\n", out)
	out = mustRun(t, deps, "unidades", "listar")
	assert.NotContains(t, out, "Litro")
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.NewValidation("x", "Campo inválido"), "Campo inválido"},
		{fmt.Errorf("envolvido: %w", domain.NewInsufficientStock("b", 2, 1)),
			"Quantidade solicitada (2) é maior que o estoque disponível (1)"},
		{domain.ErrNotFound, "Registro não encontrado"},
		{domain.ErrDuplicate, "Registro já cadastrado"},
		{domain.ErrConcurrentUpdate, "O estoque foi alterado por outra operação. Tente novamente"},
		{fmt.Errorf("disco cheio"), "Não foi possível concluir a operação. Consulte o log para detalhes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cli.Message(tc.err))
	}
}
