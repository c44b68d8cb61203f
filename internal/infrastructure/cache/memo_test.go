package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_Expira(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemo(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("filiais", []string{"Matriz"})
	v, ok := c.Get("filiais")
	require.True(t, ok)
	assert.Equal(t, []string{"Matriz"}, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("filiais")
	assert.False(t, ok)
}

func TestMemo_StringsCarregaUmaVez(t *testing.T) {
	c := NewMemo(time.Minute)
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"UN", "CX"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.Strings("unidades", load)
		require.NoError(t, err)
		assert.Equal(t, []string{"UN", "CX"}, got)
	}
	assert.Equal(t, 1, calls)

	c.Invalidate("unidades")
	_, err := c.Strings("unidades", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemo_ErroNaoFicaGuardado(t *testing.T) {
	c := NewMemo(time.Minute)
	_, err := c.Strings("k", func() ([]string, error) { return nil, errors.New("falhou") })
	require.Error(t, err)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestMemo_TTLZeroDesativa(t *testing.T) {
	c := NewMemo(0)
	c.Set("k", []string{"x"})
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestMemo_StringsDevolveCopia(t *testing.T) {
	c := NewMemo(time.Minute)
	load := func() ([]string, error) { return []string{"Matriz", "Filial São Paulo"}, nil }

	first, err := c.Strings("filiais", load)
	require.NoError(t, err)
	first[0] = "alterado"

	got, err := c.Strings("filiais", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Matriz", "Filial São Paulo"}, got)

	got[1] = "alterado"
	again, err := c.Strings("filiais", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Matriz", "Filial São Paulo"}, again)
}
