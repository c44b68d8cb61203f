package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *app) dashboardCmd() *cobra.Command {
	var branch string
	cmd := &cobra.Command{
		Use:   "painel",
		Short: "Resumo do estoque",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.deps.Dashboard.GetSummary(cmd.Context(), branch)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), s)
			}
			w := a.out(cmd)
			scope := "todas as filiais"
			if s.Branch != "" {
				scope = s.Branch
			}
			fmt.Fprintf(w, "Painel (%s)\n", scope)
			fmt.Fprintf(w, "  Brindes cadastrados: %d\n", s.TotalItems)
			fmt.Fprintf(w, "  Unidades em estoque: %d\n", s.TotalUnits)
			fmt.Fprintf(w, "  Categorias:          %d\n", s.Categories)
			fmt.Fprintf(w, "  Valor total:         %s\n", money(s.TotalValue))

			if len(s.ByBranch) > 0 {
				fmt.Fprintln(w)
				t := newTable(w, "FILIAL", "UNIDADES", "VALOR")
				for _, b := range s.ByBranch {
					t.row(b.Branch, strconv.FormatInt(b.Units, 10), money(b.TotalValue))
				}
				if err := t.flush(); err != nil {
					return err
				}
			}

			fmt.Fprintf(w, "\nEstoque baixo (<= %d): %d brinde(s)\n", s.StockMinimum, len(s.LowStock))
			if len(s.LowStock) == 0 {
				return nil
			}
			t := newTable(w, "CÓDIGO", "DESCRIÇÃO", "FILIAL", "QTD")
			for _, l := range s.LowStock {
				t.row(l.Code, l.Description, l.Branch, strconv.FormatInt(l.Quantity, 10))
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVarP(&branch, "filial", "f", "", "restringe a uma filial")
	return cmd
}
