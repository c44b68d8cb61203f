package cli

import (
	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
)

func (a *app) auditCmd() *cobra.Command {
	var f dto.AuditFilter
	cmd := &cobra.Command{
		Use:   "auditoria",
		Short: "Trilha de auditoria de brindes e movimentações",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.deps.Audit.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), list)
			}
			t := newTable(a.out(cmd), "DATA/HORA", "TABELA", "AÇÃO", "REGISTRO", "USUÁRIO")
			for _, r := range list {
				t.row(r.Timestamp.Local().Format(timeLayout), r.Table, r.Action, r.RecordID, r.UserID)
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVarP(&f.Table, "tabela", "t", "", "brindes ou movimentacoes")
	cmd.Flags().StringVar(&f.RecordID, "registro", "", "id do registro")
	cmd.Flags().IntVarP(&f.Limit, "limite", "n", 50, "quantidade máxima de linhas (0 = todas)")
	return cmd
}
