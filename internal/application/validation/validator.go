// Package validation reúne as regras de entrada dos casos de uso: validação
// declarativa de structs (go-playground/validator) e checagens contra as
// enumerações ativas (categorias, unidades, filiais).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/inventory"
)

// Limites de texto.
const (
	JustificationMaxLength = 500
	NotesMaxLength         = 500
	DestinationMaxLength   = 200
)

// Validator valida DTOs e devolve *domain.ValidationError com mensagens em português.
type Validator struct {
	v                *validator.Validate
	justificationMin int
}

// New cria o validador. justificationMin é o mínimo de caracteres exigido nas justificativas.
func New(justificationMin int) *Validator {
	v := validator.New()
	// O nome exibido vem da tag `label`; sem ela, usa o nome do campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return &Validator{v: v, justificationMin: justificationMin}
}

// JustificationMin devolve o mínimo configurado.
func (val *Validator) JustificationMin() int {
	return val.justificationMin
}

// Struct valida s pelas tags `validate` e devolve o primeiro erro traduzido.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return translate(verrs[0])
}

// Justification exige entre justificationMin e JustificationMaxLength caracteres (sem espaços nas pontas).
func (val *Validator) Justification(s string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n == 0 {
		return domain.NewValidation("justificativa", "O campo 'Justificativa' é obrigatório")
	}
	if n < val.justificationMin {
		return domain.NewValidation("justificativa",
			fmt.Sprintf("O campo 'Justificativa' deve ter pelo menos %d caracteres", val.justificationMin))
	}
	if n > JustificationMaxLength {
		return domain.NewValidation("justificativa",
			fmt.Sprintf("O campo 'Justificativa' deve ter no máximo %d caracteres", JustificationMaxLength))
	}
	return nil
}

// RequiredIfSet rejeita campo opcional informado vazio (a tag omitempty não o pega).
func RequiredIfSet(field, label string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return domain.NewValidation(field, fmt.Sprintf("O campo '%s' é obrigatório", label))
	}
	return nil
}

// Choice confere se value está entre as opções ativas. A comparação ignora caixa e
// espaços extras; devolve a grafia cadastrada.
func Choice(field, label, value string, options []string) (string, error) {
	key := inventory.DescriptionKey(value)
	if key == "" {
		return "", domain.NewValidation(field, fmt.Sprintf("O campo '%s' é obrigatório", label))
	}
	for _, opt := range options {
		if inventory.DescriptionKey(opt) == key {
			return opt, nil
		}
	}
	return "", domain.NewValidation(field,
		fmt.Sprintf("O campo '%s' deve ser uma das opções: %s", label, strings.Join(options, ", ")))
}

func translate(fe validator.FieldError) error {
	label := fe.Field()
	field := strings.ToLower(fe.StructField())
	isText := fe.Kind() == reflect.String

	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("O campo '%s' é obrigatório", label)
	case "min":
		switch {
		case isText:
			msg = fmt.Sprintf("O campo '%s' deve ter pelo menos %s caracteres", label, fe.Param())
		case fe.Kind() == reflect.Slice:
			msg = fmt.Sprintf("Informe ao menos %s item(ns) em '%s'", fe.Param(), label)
		case fe.Param() == "0":
			msg = fmt.Sprintf("O campo '%s' não pode ser negativo", label)
		default:
			msg = fmt.Sprintf("O campo '%s' deve ser no mínimo %s", label, fe.Param())
		}
	case "max":
		if isText {
			msg = fmt.Sprintf("O campo '%s' deve ter no máximo %s caracteres", label, fe.Param())
		} else {
			msg = fmt.Sprintf("O campo '%s' deve ser no máximo %s", label, fe.Param())
		}
	case "gt":
		msg = fmt.Sprintf("O campo '%s' deve ser um número inteiro positivo", label)
	case "oneof":
		msg = fmt.Sprintf("O campo '%s' deve ser uma das opções: %s",
			label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		msg = fmt.Sprintf("O campo '%s' deve conter apenas dígitos", label)
	case "email":
		msg = fmt.Sprintf("O campo '%s' deve ser um e-mail válido", label)
	case "len":
		msg = fmt.Sprintf("O campo '%s' deve ter exatamente %s caracteres", label, fe.Param())
	case "alpha":
		msg = fmt.Sprintf("O campo '%s' deve conter apenas letras", label)
	default:
		msg = fmt.Sprintf("O campo '%s' é inválido", label)
	}
	return domain.NewValidation(field, msg)
}
