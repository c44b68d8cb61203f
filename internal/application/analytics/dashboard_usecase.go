// Package analytics contém os indicadores do painel inicial.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brindez/controle-brindes/internal/application/dto"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// DashboardUseCase gera o resumo do estoque.
//
// Fonte de dados: ItemRepository e CatalogRepository (somente leitura).
type DashboardUseCase struct {
	itemRepo     repository.ItemRepository
	catalogRepo  repository.CatalogRepository
	stockMinimum int64
}

// NewDashboardUseCase constrói o caso de uso. stockMinimum é o limite de estoque baixo.
func NewDashboardUseCase(itemRepo repository.ItemRepository, catalogRepo repository.CatalogRepository, stockMinimum int64) *DashboardUseCase {
	return &DashboardUseCase{itemRepo: itemRepo, catalogRepo: catalogRepo, stockMinimum: stockMinimum}
}

// GetSummary monta o DashboardSummaryDTO, opcionalmente restrito a uma filial.
//
// Duas consultas em paralelo:
//  1. brindes (da filial ou de todas)
//  2. categorias ativas
func (uc *DashboardUseCase) GetSummary(ctx context.Context, branch string) (*dto.DashboardSummaryDTO, error) {
	branch = strings.TrimSpace(branch)

	type itemsResult struct {
		items []*entity.Item
		err   error
	}
	type categoriesResult struct {
		n   int
		err error
	}
	itemsCh := make(chan itemsResult, 1)
	catCh := make(chan categoriesResult, 1)

	go func() {
		items, err := uc.itemRepo.List(ctx, repository.ItemFilter{Branch: branch})
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		cats, err := uc.catalogRepo.ListCategories(ctx, true)
		catCh <- categoriesResult{len(cats), err}
	}()

	items := <-itemsCh
	cats := <-catCh
	if items.err != nil {
		return nil, fmt.Errorf("dashboard: brindes: %w", items.err)
	}
	if cats.err != nil {
		return nil, fmt.Errorf("dashboard: categorias: %w", cats.err)
	}

	out := &dto.DashboardSummaryDTO{
		Branch:       branch,
		TotalItems:   len(items.items),
		Categories:   cats.n,
		TotalValue:   decimal.Zero,
		StockMinimum: uc.stockMinimum,
		LowStock:     []dto.LowStockDTO{},
		ByBranch:     []dto.BranchStockDTO{},
	}
	perBranch := make(map[string]*dto.BranchStockDTO)
	for _, it := range items.items {
		value := it.TotalValue()
		out.TotalUnits += it.Quantity
		out.TotalValue = out.TotalValue.Add(value)
		if it.Quantity <= uc.stockMinimum {
			out.LowStock = append(out.LowStock, dto.LowStockDTO{
				ItemID:      it.ID,
				Code:        it.Code,
				Description: it.Description,
				Branch:      it.Branch,
				Quantity:    it.Quantity,
			})
		}
		b, ok := perBranch[it.Branch]
		if !ok {
			b = &dto.BranchStockDTO{Branch: it.Branch, TotalValue: decimal.Zero}
			perBranch[it.Branch] = b
		}
		b.Units += it.Quantity
		b.TotalValue = b.TotalValue.Add(value)
	}

	sort.SliceStable(out.LowStock, func(i, j int) bool {
		return out.LowStock[i].Quantity < out.LowStock[j].Quantity
	})
	for _, b := range perBranch {
		b.TotalValue = b.TotalValue.Round(2)
		out.ByBranch = append(out.ByBranch, *b)
	}
	sort.Slice(out.ByBranch, func(i, j int) bool { return out.ByBranch[i].Branch < out.ByBranch[j].Branch })
	out.TotalValue = out.TotalValue.Round(2)
	return out, nil
}
