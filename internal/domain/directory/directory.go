// Package directory reúne as regras dos cadastros auxiliares: fornecedores e usuários.
package directory

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/inventory"
)

// SupplierCodePrefix prefixo dos códigos de fornecedor.
const SupplierCodePrefix = "FOR"

// NextSupplierCode devolve FOR + (maior sufixo numérico + 1), com três dígitos.
// Códigos fora do padrão são ignorados.
func NextSupplierCode(existing []string) string {
	var max int64
	for _, c := range existing {
		c = strings.ToUpper(strings.TrimSpace(c))
		if !strings.HasPrefix(c, SupplierCodePrefix) {
			continue
		}
		n, err := strconv.ParseInt(c[len(SupplierCodePrefix):], 10, 64)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", SupplierCodePrefix, max+1)
}

// NormalizeCNPJ aceita o CNPJ com ou sem pontuação e devolve no formato 00.000.000/0000-00.
// Vazio continua vazio.
func NormalizeCNPJ(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	digits := make([]byte, 0, 14)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, byte(r))
		case r == '.' || r == '/' || r == '-' || r == ' ':
		default:
			return "", domain.NewValidation("cnpj", "O campo 'CNPJ' deve conter apenas dígitos e pontuação")
		}
	}
	if len(digits) != 14 {
		return "", domain.NewValidation("cnpj", "O campo 'CNPJ' deve ter 14 dígitos")
	}
	d := string(digits)
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14], nil
}

// SupplierSearchKey texto normalizado usado na busca de fornecedores: código, nome e contato.
func SupplierSearchKey(s *entity.Supplier) string {
	return inventory.DescriptionKey(s.Code) + " | " +
		inventory.DescriptionKey(s.Name) + " | " +
		inventory.DescriptionKey(s.ContactName)
}

// NormalizeUsername devolve o username em minúsculas. Aceita letras, dígitos, ponto, hífen e sublinhado.
func NormalizeUsername(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", domain.NewValidation("username", "O campo 'Usuário' é obrigatório")
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_') {
			return "", domain.NewValidation("username",
				"O campo 'Usuário' aceita apenas letras sem acento, dígitos, ponto, hífen e sublinhado")
		}
	}
	return s, nil
}

// Profile resolve o perfil sem diferenciar caixa e devolve a grafia canônica.
func Profile(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidation("perfil", "O campo 'Perfil' é obrigatório")
	}
	for _, p := range entity.Profiles {
		if strings.EqualFold(p, s) {
			return p, nil
		}
	}
	return "", domain.NewValidation("perfil",
		"O campo 'Perfil' deve ser uma das opções: "+strings.Join(entity.Profiles, ", "))
}
