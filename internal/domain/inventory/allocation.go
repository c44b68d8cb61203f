package inventory

import (
	"fmt"

	"github.com/brindez/controle-brindes/internal/domain"
)

// BranchAllocation quantidade solicitada para uma filial no cadastro de um brinde.
type BranchAllocation struct {
	Branch   string
	Quantity int64
}

// PlanAllocation valida a divisão do total entre filiais e devolve apenas as entradas
// com quantidade positiva, na ordem recebida.
//
// Regras: total > 0; ao menos uma entrada; quantidades não negativas; filial informada
// e não repetida; soma das quantidades == total.
func PlanAllocation(total int64, allocations []BranchAllocation) ([]BranchAllocation, error) {
	if total <= 0 {
		return nil, domain.NewValidation("quantidade_total", "A quantidade total deve ser maior que zero")
	}
	if len(allocations) == 0 {
		return nil, domain.NewValidation("alocacao", "Informe a quantidade de ao menos uma filial")
	}

	seen := make(map[string]struct{}, len(allocations))
	var sum int64
	plan := make([]BranchAllocation, 0, len(allocations))
	for _, a := range allocations {
		key := DescriptionKey(a.Branch)
		if key == "" {
			return nil, domain.NewValidation("filial", "O campo 'Filial' é obrigatório")
		}
		if _, dup := seen[key]; dup {
			return nil, domain.NewValidation("filial", fmt.Sprintf("Filial '%s' informada mais de uma vez", a.Branch))
		}
		seen[key] = struct{}{}
		if a.Quantity < 0 {
			return nil, domain.NewValidation("quantidade",
				fmt.Sprintf("A quantidade da filial '%s' não pode ser negativa", a.Branch))
		}
		// sum <= total sempre; total-sum não transborda
		if a.Quantity > total-sum {
			return nil, &domain.ValidationError{
				Field: "alocacao",
				Message: fmt.Sprintf("A soma das quantidades por filial excede a quantidade total (%d): já alocado %d, filial '%s' pede %d",
					total, sum, a.Branch, a.Quantity),
				Err: domain.ErrAllocationMismatch,
			}
		}
		sum += a.Quantity
		if a.Quantity > 0 {
			plan = append(plan, a)
		}
	}

	if sum != total {
		return nil, &domain.ValidationError{
			Field: "alocacao",
			Message: fmt.Sprintf("A soma das quantidades por filial (%d) difere da quantidade total (%d)",
				sum, total),
			Err: domain.ErrAllocationMismatch,
		}
	}
	return plan, nil
}
