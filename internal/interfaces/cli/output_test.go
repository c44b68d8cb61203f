package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindez/controle-brindes/internal/application/dto"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"2.5":       "R$ 2,50",
		"1234.567":  "R$ 1.234,57",
		"1000000":   "R$ 1.000.000,00",
		"-987654.3": "-R$ 987.654,30",
	}
	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

func TestParseAllocations(t *testing.T) {
	got, err := parseAllocations([]string{" Matriz = 60", "Filial A=B=40"})
	require.NoError(t, err)
	assert.Equal(t, []dto.BranchAllocation{
		{Branch: "Matriz", Quantity: 60},
		{Branch: "Filial A=B", Quantity: 40},
	}, got)

	_, err = parseAllocations([]string{"=5"})
	assert.Error(t, err)
	_, err = parseAllocations([]string{"Matriz=dez"})
	assert.EqualError(t, err, `Quantidade inválida em "Matriz=dez"`)
}

func TestParsePrice(t *testing.T) {
	p, err := parsePrice("2,75")
	require.NoError(t, err)
	assert.Equal(t, "2.75", p.String())

	p, err = parsePrice(" ")
	require.NoError(t, err)
	assert.True(t, p.IsZero())

	_, err = parsePrice("abc")
	assert.EqualError(t, err, "Valor unitário inválido")
}
