package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
)

func (a *app) branchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filiais",
		Short: "Cadastro de filiais",
	}

	var all bool
	list := &cobra.Command{
		Use:   "listar",
		Short: "Lista filiais (ativas por padrão)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			branches, err := a.deps.Branches.List(cmd.Context(), !all)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), branches)
			}
			t := newTable(a.out(cmd), "NÚMERO", "NOME", "CIDADE", "TELEFONE", "ATIVA")
			for _, b := range branches {
				t.row(b.Number, b.Name, b.City, b.Phone, yesNo(b.Active))
			}
			return t.flush()
		},
	}
	list.Flags().BoolVar(&all, "todas", false, "inclui filiais inativas")

	var in dto.CreateBranchRequest
	create := &cobra.Command{
		Use:   "criar",
		Short: "Cadastra uma filial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.deps.Branches.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), b)
			}
			fmt.Fprintf(a.out(cmd), "Filial %s - %s cadastrada\n", b.Number, b.Name)
			return nil
		},
	}
	create.Flags().StringVar(&in.Number, "numero", "", "número da filial")
	create.Flags().StringVar(&in.Name, "nome", "", "nome")
	create.Flags().StringVar(&in.City, "cidade", "", "cidade")
	create.Flags().StringVar(&in.Address, "endereco", "", "endereço")
	create.Flags().StringVar(&in.Phone, "telefone", "", "telefone")

	cmd.AddCommand(list, create, a.branchEditCmd(), a.branchActiveCmd("ativar", true), a.branchActiveCmd("desativar", false))
	return cmd
}

func (a *app) branchActiveCmd(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <nome>",
		Short: "Altera a situação da filial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.deps.Branches.SetActive(cmd.Context(), args[0], active, a.user)
			if err != nil {
				return err
			}
			state := "inativa"
			if b.Active {
				state = "ativa"
			}
			fmt.Fprintf(a.out(cmd), "Filial %s agora está %s\n", b.Name, state)
			return nil
		},
	}
}

func (a *app) branchEditCmd() *cobra.Command {
	var number, name, city, address, phone string
	cmd := &cobra.Command{
		Use:   "editar <nome>",
		Short: "Altera os dados da filial (renomear só sem brindes ou usuários vinculados)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.UpdateBranchRequest{User: a.user}
			flags := cmd.Flags()
			if flags.Changed("numero") {
				in.Number = &number
			}
			if flags.Changed("nome") {
				in.Name = &name
			}
			if flags.Changed("cidade") {
				in.City = &city
			}
			if flags.Changed("endereco") {
				in.Address = &address
			}
			if flags.Changed("telefone") {
				in.Phone = &phone
			}
			b, err := a.deps.Branches.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), b)
			}
			fmt.Fprintf(a.out(cmd), "Filial %s - %s atualizada\n", b.Number, b.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&number, "numero", "", "número da filial")
	cmd.Flags().StringVar(&name, "nome", "", "novo nome")
	cmd.Flags().StringVar(&city, "cidade", "", "cidade")
	cmd.Flags().StringVar(&address, "endereco", "", "endereço")
	cmd.Flags().StringVar(&phone, "telefone", "", "telefone")
	return cmd
}
