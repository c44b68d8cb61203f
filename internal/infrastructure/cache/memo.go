// Package cache guarda por um tempo curto as listas de apoio consultadas a cada operação.
package cache

import (
	"slices"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Memo cache chave/valor com TTL, seguro para uso concorrente. TTL <= 0 desativa o cache.
type Memo struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

// NewMemo cria um memo com o TTL informado.
func NewMemo(ttl time.Duration) *Memo {
	return &Memo{ttl: ttl, now: time.Now, m: make(map[string]entry)}
}

// Get devolve o valor guardado em key, se existir e não tiver expirado.
func (c *Memo) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.m, key)
		return nil, false
	}
	return e.value, true
}

// Set guarda value em key.
func (c *Memo) Set(key string, value any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate remove as chaves informadas; sem chaves, limpa tudo.
func (c *Memo) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		c.m = make(map[string]entry)
		return
	}
	for _, k := range keys {
		delete(c.m, k)
	}
}

// Strings devolve o valor de key ou o carrega com load, guardando o resultado.
// Erros de load não são guardados. O chamador recebe sempre uma cópia.
func (c *Memo) Strings(key string, load func() ([]string, error)) ([]string, error) {
	if v, ok := c.Get(key); ok {
		if s, ok := v.([]string); ok {
			return slices.Clone(s), nil
		}
	}
	s, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, slices.Clone(s))
	return s, nil
}
