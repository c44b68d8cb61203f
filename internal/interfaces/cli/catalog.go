package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/dto"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorias",
		Short: "Categorias de brindes",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Lista categorias ativas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := a.deps.Catalog.ListCategories(cmd.Context(), true)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), cats)
			}
			t := newTable(a.out(cmd), "NOME", "DESCRIÇÃO")
			for _, c := range cats {
				t.row(c.Name, c.Description)
			}
			return t.flush()
		},
	}

	var in dto.CreateCategoryRequest
	create := &cobra.Command{
		Use:   "criar",
		Short: "Cadastra uma categoria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.deps.Catalog.CreateCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Categoria %s cadastrada\n", c.Name)
			return nil
		},
	}
	create.Flags().StringVar(&in.Name, "nome", "", "nome")
	create.Flags().StringVar(&in.Description, "descricao", "", "descrição")

	del := &cobra.Command{
		Use:   "excluir <nome>",
		Short: "Exclui uma categoria sem brindes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.deps.Catalog.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Categoria %s excluída\n", strings.TrimSpace(args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, create, a.categoryEditCmd(), del)
	return cmd
}

func (a *app) unitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unidades",
		Short: "Unidades de medida",
	}

	list := &cobra.Command{
		Use:   "listar",
		Short: "Lista unidades ativas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			units, err := a.deps.Catalog.ListUnits(cmd.Context(), true)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), units)
			}
			t := newTable(a.out(cmd), "CÓDIGO", "DESCRIÇÃO")
			for _, u := range units {
				t.row(u.Code, u.Description)
			}
			return t.flush()
		},
	}

	var in dto.CreateUnitRequest
	create := &cobra.Command{
		Use:   "criar",
		Short: "Cadastra uma unidade de medida",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.deps.Catalog.CreateUnit(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Unidade %s cadastrada\n", u.Code)
			return nil
		},
	}
	create.Flags().StringVar(&in.Code, "codigo", "", "código (ex.: UN)")
	create.Flags().StringVar(&in.Description, "descricao", "", "descrição")

	del := &cobra.Command{
		Use:   "excluir <codigo>",
		Short: "Exclui uma unidade sem brindes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.deps.Catalog.DeleteUnit(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out(cmd), "Unidade %s excluída\n", strings.ToUpper(strings.TrimSpace(args[0])))
			return nil
		},
	}

	cmd.AddCommand(list, create, a.unitEditCmd(), del)
	return cmd
}

func (a *app) categoryEditCmd() *cobra.Command {
	var (
		name, description string
		active            bool
	)
	cmd := &cobra.Command{
		Use:   "editar <nome>",
		Short: "Altera uma categoria (renomear só sem brindes vinculados)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.UpdateCategoryRequest{User: a.user}
			flags := cmd.Flags()
			if flags.Changed("nome") {
				in.Name = &name
			}
			if flags.Changed("descricao") {
				in.Description = &description
			}
			if flags.Changed("ativa") {
				in.Active = &active
			}
			c, err := a.deps.Catalog.UpdateCategory(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), c)
			}
			fmt.Fprintf(a.out(cmd), "Categoria %s atualizada\n", c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "nome", "", "novo nome")
	cmd.Flags().StringVar(&description, "descricao", "", "descrição")
	cmd.Flags().BoolVar(&active, "ativa", true, "situação (--ativa=false desativa)")
	return cmd
}

func (a *app) unitEditCmd() *cobra.Command {
	var (
		code, description string
		active            bool
	)
	cmd := &cobra.Command{
		Use:   "editar <codigo>",
		Short: "Altera uma unidade (trocar o código só sem brindes vinculados)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.UpdateUnitRequest{User: a.user}
			flags := cmd.Flags()
			if flags.Changed("codigo") {
				in.Code = &code
			}
			if flags.Changed("descricao") {
				in.Description = &description
			}
			if flags.Changed("ativa") {
				in.Active = &active
			}
			u, err := a.deps.Catalog.UpdateUnit(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out(cmd), u)
			}
			fmt.Fprintf(a.out(cmd), "Unidade %s atualizada\n", u.Code)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "codigo", "", "novo código")
	cmd.Flags().StringVar(&description, "descricao", "", "descrição")
	cmd.Flags().BoolVar(&active, "ativa", true, "situação (--ativa=false desativa)")
	return cmd
}
