// Package cli é a interface de linha de comando do controle de brindes (spf13/cobra).
// Só traduz flags em DTOs e resultados em texto; as regras ficam nos casos de uso.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/brindez/controle-brindes/internal/application/analytics"
	"github.com/brindez/controle-brindes/internal/application/audit"
	"github.com/brindez/controle-brindes/internal/application/inventory"
	"github.com/brindez/controle-brindes/internal/application/usecase"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// Deps dependências dos comandos.
type Deps struct {
	Items      *usecase.ItemUseCase
	Branches   *usecase.BranchUseCase
	Catalog    *usecase.CatalogUseCase
	Suppliers  *usecase.SupplierUseCase
	Users      *usecase.UserUseCase
	Ledger     *inventory.LedgerUseCase
	Allocation *inventory.AllocationUseCase
	Transfer   *inventory.TransferUseCase
	Dashboard  *analytics.DashboardUseCase
	Audit      *audit.Sink
	// User usuário atuante padrão (BRINDES_USER ou login do sistema).
	User string
	Log  *logger.Logger
}

type app struct {
	deps   Deps
	user   string
	asJSON bool
}

// NewRootCmd monta a árvore de comandos.
func NewRootCmd(deps Deps) *cobra.Command {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	a := &app{deps: deps}

	root := &cobra.Command{
		Use:           "brindes",
		Short:         "Controle de brindes: estoque por filial, movimentações e transferências",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.user, "usuario", "u", deps.User, "usuário responsável pela operação")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "saída em JSON")

	root.AddCommand(
		a.itemsCmd(),
		a.stockCmd(),
		a.movementsCmd(),
		a.branchesCmd(),
		a.categoriesCmd(),
		a.unitsCmd(),
		a.suppliersCmd(),
		a.usersCmd(),
		a.dashboardCmd(),
		a.auditCmd(),
	)
	return root
}

func (a *app) out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
