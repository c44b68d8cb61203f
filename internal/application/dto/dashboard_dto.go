package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO indicadores do painel inicial.
type DashboardSummaryDTO struct {
	// Filial filtrada; vazio = todas.
	Branch     string          `json:"filial,omitempty"`
	TotalItems int             `json:"total_brindes"`
	TotalUnits int64           `json:"total_unidades"`
	Categories int             `json:"total_categorias"`
	TotalValue decimal.Decimal `json:"valor_total"` // Σ quantidade × valor unitário

	// Brindes com quantidade <= StockMinimum, menor saldo primeiro.
	StockMinimum int64            `json:"estoque_minimo"`
	LowStock     []LowStockDTO    `json:"estoque_baixo"`
	ByBranch     []BranchStockDTO `json:"por_filial"`
}

// LowStockDTO brinde com saldo no limite mínimo ou abaixo.
type LowStockDTO struct {
	ItemID      string `json:"brinde_id"`
	Code        string `json:"codigo"`
	Description string `json:"descricao"`
	Branch      string `json:"filial"`
	Quantity    int64  `json:"quantidade"`
}

// BranchStockDTO totais de uma filial.
type BranchStockDTO struct {
	Branch     string          `json:"filial"`
	Units      int64           `json:"unidades"`
	TotalValue decimal.Decimal `json:"valor_total"`
}
