package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
)

func (a *app) suppliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fornecedores",
		Short: "Cadastro de fornecedores",
	}

	var filter dto.SupplierFilter
	list := &cobra.Command{
		Use:   "listar",
		Short: "Lista fornecedores (ativos por padrão)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suppliers, err := a.deps.Suppliers.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), suppliers)
			}
			t := newTable(a.out(cmd), "CÓDIGO", "NOME", "CONTATO", "TELEFONE", "CIDADE", "ATIVO")
			for _, s := range suppliers {
				t.row(s.Code, s.Name, s.ContactName, s.Phone, s.City, yesNo(s.Active))
			}
			return t.flush()
		},
	}
	list.Flags().StringVarP(&filter.Search, "busca", "b", "", "trecho do código, nome ou contato")
	list.Flags().BoolVar(&filter.All, "todos", false, "inclui fornecedores inativos")

	show := &cobra.Command{
		Use:   "mostrar <codigo>",
		Short: "Mostra um fornecedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.deps.Suppliers.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), s)
			}
			w := a.out(cmd)
			fmt.Fprintf(w, "%s - %s\n", s.Code, s.Name)
			fmt.Fprintf(w, "Contato:  %s  %s  %s\n", s.ContactName, s.Phone, s.Email)
			fmt.Fprintf(w, "Endereço: %s, %s/%s %s\n", s.Address, s.City, s.State, s.ZipCode)
			fmt.Fprintf(w, "CNPJ:     %s\n", s.CNPJ)
			fmt.Fprintf(w, "Ativo:    %s\n", yesNo(s.Active))
			if s.Notes != "" {
				fmt.Fprintf(w, "Obs.:     %s\n", s.Notes)
			}
			return nil
		},
	}

	var in dto.CreateSupplierRequest
	create := &cobra.Command{
		Use:   "criar",
		Short: "Cadastra um fornecedor (sem --codigo gera o próximo FORnnn)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.User = a.user
			s, err := a.deps.Suppliers.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), s)
			}
			fmt.Fprintf(a.out(cmd), "Fornecedor %s - %s cadastrado\n", s.Code, s.Name)
			return nil
		},
	}
	f := create.Flags()
	f.StringVar(&in.Code, "codigo", "", "código")
	f.StringVar(&in.Name, "nome", "", "razão social ou nome fantasia")
	f.StringVar(&in.ContactName, "contato", "", "nome do contato")
	f.StringVar(&in.Phone, "telefone", "", "telefone")
	f.StringVar(&in.Email, "email", "", "e-mail")
	f.StringVar(&in.Address, "endereco", "", "endereço")
	f.StringVar(&in.City, "cidade", "", "cidade")
	f.StringVar(&in.State, "uf", "", "UF")
	f.StringVar(&in.ZipCode, "cep", "", "CEP")
	f.StringVar(&in.CNPJ, "cnpj", "", "CNPJ")
	f.StringVar(&in.Notes, "obs", "", "observações")

	del := &cobra.Command{
		Use:   "excluir <codigo>",
		Short: "Exclui um fornecedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.deps.Suppliers.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.deps.Suppliers.Delete(cmd.Context(), s.Code, a.user); err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Fornecedor %s excluído\n", s.Code)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, a.supplierEditCmd(),
		a.supplierActiveCmd("ativar", true), a.supplierActiveCmd("desativar", false), del)
	return cmd
}

func (a *app) supplierEditCmd() *cobra.Command {
	var name, contact, phone, email, address, city, state, zip, cnpj, notes string
	cmd := &cobra.Command{
		Use:   "editar <codigo>",
		Short: "Altera os dados de um fornecedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.UpdateSupplierRequest{User: a.user}
			flags := cmd.Flags()
			for flag, field := range map[string]struct {
				dst **string
				v   *string
			}{
				"nome":     {&in.Name, &name},
				"contato":  {&in.ContactName, &contact},
				"telefone": {&in.Phone, &phone},
				"email":    {&in.Email, &email},
				"endereco": {&in.Address, &address},
				"cidade":   {&in.City, &city},
				"uf":       {&in.State, &state},
				"cep":      {&in.ZipCode, &zip},
				"cnpj":     {&in.CNPJ, &cnpj},
				"obs":      {&in.Notes, &notes},
			} {
				if flags.Changed(flag) {
					*field.dst = field.v
				}
			}
			s, err := a.deps.Suppliers.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), s)
			}
			fmt.Fprintf(a.out(cmd), "Fornecedor %s atualizado\n", s.Code)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "nome", "", "razão social ou nome fantasia")
	f.StringVar(&contact, "contato", "", "nome do contato")
	f.StringVar(&phone, "telefone", "", "telefone")
	f.StringVar(&email, "email", "", "e-mail")
	f.StringVar(&address, "endereco", "", "endereço")
	f.StringVar(&city, "cidade", "", "cidade")
	f.StringVar(&state, "uf", "", "UF")
	f.StringVar(&zip, "cep", "", "CEP")
	f.StringVar(&cnpj, "cnpj", "", "CNPJ")
	f.StringVar(&notes, "obs", "", "observações")
	return cmd
}

func (a *app) supplierActiveCmd(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <codigo>",
		Short: "Altera a situação do fornecedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.deps.Suppliers.SetActive(cmd.Context(), args[0], active, a.user)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Fornecedor %s agora está %s\n", s.Code, activeLabel(s.Active, "ativo", "inativo"))
			return nil
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuarios",
		Short: "Cadastro de usuários",
	}

	var all bool
	list := &cobra.Command{
		Use:   "listar",
		Short: "Lista usuários (ativos por padrão)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.deps.Users.List(cmd.Context(), !all)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), users)
			}
			t := newTable(a.out(cmd), "USUÁRIO", "NOME", "FILIAL", "PERFIL", "ATIVO")
			for _, u := range users {
				t.row(u.Username, u.Name, u.Branch, u.Profile, yesNo(u.Active))
			}
			return t.flush()
		},
	}
	list.Flags().BoolVar(&all, "todos", false, "inclui usuários inativos")

	var in dto.CreateUserRequest
	create := &cobra.Command{
		Use:   "criar",
		Short: "Cadastra um usuário",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.User = a.user
			u, err := a.deps.Users.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), u)
			}
			fmt.Fprintf(a.out(cmd), "Usuário %s cadastrado (%s, %s)\n", u.Username, u.Profile, u.Branch)
			return nil
		},
	}
	create.Flags().StringVar(&in.Username, "login", "", "username")
	create.Flags().StringVar(&in.Name, "nome", "", "nome completo")
	create.Flags().StringVar(&in.Email, "email", "", "e-mail")
	create.Flags().StringVarP(&in.Branch, "filial", "f", "", "filial de lotação")
	create.Flags().StringVar(&in.Profile, "perfil", "Usuario", "perfil (Admin, Gestor, Usuario)")

	cmd.AddCommand(list, create, a.userEditCmd(),
		a.userActiveCmd("ativar", true), a.userActiveCmd("desativar", false))
	return cmd
}

func (a *app) userEditCmd() *cobra.Command {
	var name, email, branch, profile string
	cmd := &cobra.Command{
		Use:   "editar <username>",
		Short: "Altera os dados de um usuário",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.UpdateUserRequest{User: a.user}
			flags := cmd.Flags()
			if flags.Changed("nome") {
				in.Name = &name
			}
			if flags.Changed("email") {
				in.Email = &email
			}
			if flags.Changed("filial") {
				in.Branch = &branch
			}
			if flags.Changed("perfil") {
				in.Profile = &profile
			}
			u, err := a.deps.Users.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), u)
			}
			fmt.Fprintf(a.out(cmd), "Usuário %s atualizado\n", u.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "nome", "", "nome completo")
	cmd.Flags().StringVar(&email, "email", "", "e-mail")
	cmd.Flags().StringVarP(&branch, "filial", "f", "", "filial de lotação")
	cmd.Flags().StringVar(&profile, "perfil", "", "perfil (Admin, Gestor, Usuario)")
	return cmd
}

func (a *app) userActiveCmd(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: "Altera a situação do usuário",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.deps.Users.SetActive(cmd.Context(), args[0], active, a.user)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Usuário %s agora está %s\n", u.Username, activeLabel(u.Active, "ativo", "inativo"))
			return nil
		},
	}
}

func activeLabel(active bool, yes, no string) string {
	if active {
		return yes
	}
	return no
}
