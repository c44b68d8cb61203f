package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
)

func (a *app) movementsCmd() *cobra.Command {
	var (
		f   dto.MovementFilter
		ref string
	)
	cmd := &cobra.Command{
		Use:     "movimentacoes",
		Aliases: []string{"historico"},
		Short:   "Histórico do livro de estoque, mais recentes primeiro",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ref != "" {
				item, err := a.findItem(cmd.Context(), ref)
				if err != nil {
					return err
				}
				f.ItemID = item.ID
			}
			list, err := a.deps.Ledger.ListMovements(cmd.Context(), f)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), list)
			}
			t := newTable(a.out(cmd), "DATA/HORA", "TIPO", "QTD", "USUÁRIO", "ORIGEM", "DESTINO", "JUSTIFICATIVA")
			for _, m := range list {
				dest := m.DestinationBranch
				if dest == "" {
					dest = m.Destination
				}
				t.row(m.CreatedAt.Local().Format(timeLayout), movementLabel(m.Type),
					strconv.FormatInt(m.Quantity, 10), m.User, m.OriginBranch, dest, m.Justification)
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVar(&ref, "brinde", "", "código ou id do brinde")
	cmd.Flags().StringVarP(&f.Type, "tipo", "t", "", "entrada, saida, transferencia_saida ou transferencia_entrada")
	cmd.Flags().IntVarP(&f.Limit, "limite", "n", 50, "quantidade máxima de linhas (0 = todas)")
	return cmd
}
