package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DescriptionKey normaliza a descrição de um brinde para comparação entre filiais:
// NFC, sem espaços nas pontas, espaços internos colapsados e case folding.
// "  Caneta  AZUL " e "caneta azul" produzem a mesma chave.
func DescriptionKey(description string) string {
	s := norm.NFC.String(description)
	s = strings.Join(strings.Fields(s), " ")
	// Caser guarda estado; um por chamada.
	return cases.Fold().String(s)
}

// likeEscaper escapa os curingas de LIKE; o caractere de escape é a barra invertida.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchPattern monta o padrão LIKE "contém" para a busca textual, com os
// curingas do texto tratados como literais. Usar com ESCAPE '\'.
func SearchPattern(search string) string {
	return "%" + likeEscaper.Replace(DescriptionKey(search)) + "%"
}

// SameBranch compara nomes de filial com a mesma normalização das descrições.
func SameBranch(a, b string) bool {
	return DescriptionKey(a) == DescriptionKey(b)
}
