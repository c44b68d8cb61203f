package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/domain"
)

func (a *app) itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "itens",
		Aliases: []string{"brindes"},
		Short:   "Cadastro de brindes",
	}
	cmd.AddCommand(
		a.itemsListCmd(),
		a.itemsShowCmd(),
		a.itemsCreateCmd(),
		a.itemsAllocateCmd(),
		a.itemsEditCmd(),
		a.itemsDeleteCmd(),
	)
	return cmd
}

func (a *app) itemsListCmd() *cobra.Command {
	var f dto.ItemFilter
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista brindes por código",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.deps.Items.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), list)
			}
			t := newTable(a.out(cmd), "CÓDIGO", "DESCRIÇÃO", "CATEGORIA", "FILIAL", "QTD", "UN", "VALOR UNIT.", "VALOR TOTAL")
			for _, it := range list {
				t.row(it.Code, it.Description, it.Category, it.Branch,
					strconv.FormatInt(it.Quantity, 10), it.Unit, money(it.UnitPrice), money(it.TotalValue))
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVar(&f.Branch, "filial", "", "filtra pela filial")
	cmd.Flags().StringVar(&f.Category, "categoria", "", "filtra pela categoria")
	cmd.Flags().StringVar(&f.Unit, "unidade", "", "filtra pela unidade de medida")
	cmd.Flags().StringVarP(&f.Search, "busca", "b", "", "trecho da descrição ou do código")
	return cmd
}

func (a *app) itemsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ver <codigo|id>",
		Short: "Mostra um brinde",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.findItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printItem(cmd, item)
		},
	}
}

func (a *app) itemsCreateCmd() *cobra.Command {
	var (
		in    dto.CreateItemRequest
		price string
	)
	cmd := &cobra.Command{
		Use:   "criar",
		Short: "Cadastra um brinde em uma filial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := parsePrice(price)
			if err != nil {
				return err
			}
			in.UnitPrice = p
			in.User = a.user
			item, err := a.deps.Items.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), item)
			}
			fmt.Fprintf(a.out(cmd), "Brinde %s cadastrado na filial %s\n", item.Code, item.Branch)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Description, "descricao", "d", "", "descrição")
	cmd.Flags().StringVarP(&in.Category, "categoria", "c", "", "categoria")
	cmd.Flags().StringVar(&in.Unit, "unidade", "UN", "unidade de medida")
	cmd.Flags().StringVarP(&in.Branch, "filial", "f", "", "filial")
	cmd.Flags().Int64VarP(&in.Quantity, "quantidade", "q", 0, "quantidade inicial")
	cmd.Flags().StringVarP(&price, "valor", "v", "0", "valor unitário")
	cmd.Flags().StringVar(&in.Notes, "obs", "", "observações")
	return cmd
}

func (a *app) itemsAllocateCmd() *cobra.Command {
	var (
		in     dto.AllocateItemRequest
		price  string
		shares []string
	)
	cmd := &cobra.Command{
		Use:   "alocar",
		Short: "Cadastra um brinde novo dividindo o total entre filiais",
		Example: `  brindes itens alocar -d "Caneta Azul" -c Canetas -v 2.50 --total 100 \
    --filial "Matriz=60" --filial "Filial São Paulo=40"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := parsePrice(price)
			if err != nil {
				return err
			}
			allocations, err := parseAllocations(shares)
			if err != nil {
				return err
			}
			in.UnitPrice = p
			in.Allocations = allocations
			in.User = a.user
			res, err := a.deps.Allocation.AllocateNewItem(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), res)
			}
			t := newTable(a.out(cmd), "CÓDIGO", "FILIAL", "QTD")
			for _, it := range res.Items {
				t.row(it.Code, it.Branch, strconv.FormatInt(it.Quantity, 10))
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVarP(&in.Description, "descricao", "d", "", "descrição")
	cmd.Flags().StringVarP(&in.Category, "categoria", "c", "", "categoria")
	cmd.Flags().StringVar(&in.Unit, "unidade", "UN", "unidade de medida")
	cmd.Flags().StringVarP(&price, "valor", "v", "0", "valor unitário")
	cmd.Flags().StringVar(&in.Notes, "obs", "", "observações")
	cmd.Flags().Int64Var(&in.Total, "total", 0, "quantidade total")
	cmd.Flags().StringArrayVarP(&shares, "filial", "f", nil, `alocação "Filial=quantidade" (repetível)`)
	return cmd
}

func (a *app) itemsEditCmd() *cobra.Command {
	var (
		description, category, unit, branch, price, notes string
	)
	cmd := &cobra.Command{
		Use:   "editar <codigo|id>",
		Short: "Altera os dados descritivos de um brinde (a quantidade muda só por movimentação)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.findItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in := dto.UpdateItemRequest{User: a.user}
			flags := cmd.Flags()
			if flags.Changed("descricao") {
				in.Description = &description
			}
			if flags.Changed("categoria") {
				in.Category = &category
			}
			if flags.Changed("unidade") {
				in.Unit = &unit
			}
			if flags.Changed("filial") {
				in.Branch = &branch
			}
			if flags.Changed("valor") {
				p, err := parsePrice(price)
				if err != nil {
					return err
				}
				in.UnitPrice = &p
			}
			if flags.Changed("obs") {
				in.Notes = &notes
			}
			updated, err := a.deps.Items.Update(cmd.Context(), item.ID, in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), updated)
			}
			fmt.Fprintf(a.out(cmd), "Brinde %s atualizado\n", updated.Code)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "descricao", "d", "", "descrição")
	cmd.Flags().StringVarP(&category, "categoria", "c", "", "categoria")
	cmd.Flags().StringVar(&unit, "unidade", "", "unidade de medida")
	cmd.Flags().StringVarP(&branch, "filial", "f", "", "filial")
	cmd.Flags().StringVarP(&price, "valor", "v", "", "valor unitário")
	cmd.Flags().StringVar(&notes, "obs", "", "observações")
	return cmd
}

func (a *app) itemsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "excluir <codigo|id>",
		Short: "Exclui um brinde sem movimentações",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.findItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.deps.Items.Delete(cmd.Context(), item.ID, a.user); err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Brinde %s excluído\n", item.Code)
			return nil
		},
	}
}

func (a *app) printItem(cmd *cobra.Command, it *dto.ItemResponse) error {
	if a.asJSON {
		return writeJSON(a.out(cmd), it)
	}
	t := newTable(a.out(cmd), "CAMPO", "VALOR")
	t.row("Código", it.Code)
	t.row("ID", it.ID)
	t.row("Descrição", it.Description)
	t.row("Categoria", it.Category)
	t.row("Unidade", it.Unit)
	t.row("Filial", it.Branch)
	t.row("Quantidade", strconv.FormatInt(it.Quantity, 10))
	t.row("Valor unitário", money(it.UnitPrice))
	t.row("Valor total", money(it.TotalValue))
	t.row("Observações", it.Notes)
	t.row("Cadastrado por", it.CreatedBy)
	t.row("Cadastrado em", it.CreatedAt.Local().Format(timeLayout))
	t.row("Atualizado em", it.UpdatedAt.Local().Format(timeLayout))
	return t.flush()
}

// findItem aceita o id ou o código exibido nas listagens.
func (a *app) findItem(ctx context.Context, ref string) (*dto.ItemResponse, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.NewValidation("brinde", "Informe o código ou o id do brinde")
	}
	item, err := a.deps.Items.Get(ctx, ref)
	if err == nil {
		return item, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	list, err := a.deps.Items.List(ctx, dto.ItemFilter{Search: ref})
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Code == ref {
			return &list[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidation("valor_unitario", "Valor unitário inválido")
	}
	return d, nil
}

// parseAllocations lê entradas "Filial=quantidade"; o nome pode conter espaços e "=".
func parseAllocations(shares []string) ([]dto.BranchAllocation, error) {
	out := make([]dto.BranchAllocation, 0, len(shares))
	for _, s := range shares {
		i := strings.LastIndex(s, "=")
		if i <= 0 {
			return nil, domain.NewValidation("alocacao", fmt.Sprintf("Alocação inválida %q: use Filial=quantidade", s))
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64)
		if err != nil {
			return nil, domain.NewValidation("alocacao", fmt.Sprintf("Quantidade inválida em %q", s))
		}
		out = append(out, dto.BranchAllocation{Branch: strings.TrimSpace(s[:i]), Quantity: qty})
	}
	return out, nil
}
