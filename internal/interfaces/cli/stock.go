package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/domain/entity"
)

func (a *app) stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estoque",
		Short: "Entradas, saídas e transferências entre filiais",
	}
	cmd.AddCommand(
		a.movementCmd(entity.MovementTypeEntrada),
		a.movementCmd(entity.MovementTypeSaida),
		a.transferCmd(),
	)
	return cmd
}

func (a *app) movementCmd(kind string) *cobra.Command {
	var in dto.MovementRequest
	short := "Registra entrada de estoque"
	if kind == entity.MovementTypeSaida {
		short = "Registra saída de estoque (exige justificativa)"
	}
	cmd := &cobra.Command{
		Use:   kind + " <codigo|id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.findItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in.ItemID = item.ID
			in.Type = kind
			in.User = a.user
			res, err := a.deps.Ledger.ApplyMovement(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), res)
			}
			fmt.Fprintf(a.out(cmd), "%s de %d registrada. Brinde %s (%s): saldo %d\n",
				movementLabel(kind), res.Movement.Quantity, res.Item.Code, res.Item.Branch, res.Item.Quantity)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&in.Quantity, "quantidade", "q", 0, "quantidade")
	cmd.Flags().StringVar(&in.Notes, "obs", "", "observações")
	if kind == entity.MovementTypeSaida {
		cmd.Flags().StringVarP(&in.Justification, "justificativa", "j", "", "motivo da saída")
		cmd.Flags().StringVar(&in.Destination, "destino", "", "destinatário ou evento")
	}
	return cmd
}

func (a *app) transferCmd() *cobra.Command {
	var in dto.TransferRequest
	cmd := &cobra.Command{
		Use:   "transferir <codigo|id>",
		Short: "Transfere quantidade de um brinde para outra filial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.findItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in.ItemID = item.ID
			in.User = a.user
			res, err := a.deps.Transfer.Transfer(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), res)
			}
			w := a.out(cmd)
			fmt.Fprintf(w, "Transferência %s concluída: %d unidade(s) de %s para %s\n",
				res.TransactionID, res.Out.Quantity, res.Source.Branch, res.Destination.Branch)
			fmt.Fprintf(w, "  origem  %s (%s): saldo %d\n", res.Source.Code, res.Source.Branch, res.Source.Quantity)
			fmt.Fprintf(w, "  destino %s (%s): saldo %d\n", res.Destination.Code, res.Destination.Branch, res.Destination.Quantity)
			if res.DestinationCreated {
				fmt.Fprintln(w, "  brinde criado automaticamente na filial de destino")
			}
			return nil
		},
	}
	cmd.Flags().Int64VarP(&in.Quantity, "quantidade", "q", 0, "quantidade")
	cmd.Flags().StringVarP(&in.DestinationBranch, "para", "p", "", "filial de destino")
	cmd.Flags().StringVarP(&in.Justification, "justificativa", "j", "", "motivo da transferência")
	cmd.Flags().StringVar(&in.Notes, "obs", "", "observações")
	return cmd
}

func movementLabel(kind string) string {
	switch kind {
	case entity.MovementTypeEntrada:
		return "Entrada"
	case entity.MovementTypeSaida:
		return "Saída"
	case entity.MovementTypeTransferenciaSaida:
		return "Transferência (saída)"
	case entity.MovementTypeTransferenciaEntrada:
		return "Transferência (entrada)"
	default:
		return kind
	}
}
