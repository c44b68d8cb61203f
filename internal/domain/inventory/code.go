package inventory

import (
	"fmt"
	"strconv"
)

// NextCode gera o próximo código sequencial: max(códigos numéricos) + 1, com três dígitos.
// Códigos não numéricos são ignorados; acima de 999 o código simplesmente cresce.
func NextCode(existing []string) string {
	var max int64
	for _, c := range existing {
		n, err := strconv.ParseInt(c, 10, 64)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%03d", max+1)
}
