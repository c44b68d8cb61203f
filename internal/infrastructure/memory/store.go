// Package memory implementa os repositórios em memória, com persistência opcional
// em um arquivo JSON. É a camada de dados de desenvolvimento e a base dos testes.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// state todo o conteúdo do store. Movements e Audit ficam em ordem de inserção.
type state struct {
	Items      map[string]*entity.Item `json:"brindes"`
	Movements  []*entity.Movement      `json:"movimentacoes"`
	Branches   []*entity.Branch        `json:"filiais"`
	Categories []*entity.Category      `json:"categorias"`
	Units      []*entity.Unit          `json:"unidades_medida"`
	Suppliers  []*entity.Supplier      `json:"fornecedores"`
	Users      []*entity.User          `json:"usuarios"`
	Audit      []*entity.AuditRecord   `json:"logs_auditoria"`
}

func newState() *state {
	return &state{Items: make(map[string]*entity.Item)}
}

// clone cópia profunda usada como ponto de restauração da transação.
func (s *state) clone() *state {
	c := &state{
		Items:      make(map[string]*entity.Item, len(s.Items)),
		Movements:  make([]*entity.Movement, len(s.Movements)),
		Branches:   make([]*entity.Branch, len(s.Branches)),
		Categories: make([]*entity.Category, len(s.Categories)),
		Units:      make([]*entity.Unit, len(s.Units)),
		Suppliers:  make([]*entity.Supplier, len(s.Suppliers)),
		Users:      make([]*entity.User, len(s.Users)),
		Audit:      make([]*entity.AuditRecord, len(s.Audit)),
	}
	for id, it := range s.Items {
		c.Items[id] = it.Clone()
	}
	for i, m := range s.Movements {
		cp := *m
		c.Movements[i] = &cp
	}
	for i, b := range s.Branches {
		cp := *b
		c.Branches[i] = &cp
	}
	for i, cat := range s.Categories {
		cp := *cat
		c.Categories[i] = &cp
	}
	for i, u := range s.Units {
		cp := *u
		c.Units[i] = &cp
	}
	for i, sup := range s.Suppliers {
		cp := *sup
		c.Suppliers[i] = &cp
	}
	for i, u := range s.Users {
		cp := *u
		c.Users[i] = &cp
	}
	// registros de auditoria são imutáveis
	copy(c.Audit, s.Audit)
	return c
}

// Store guarda os dados sob um único mutex; todos os escritores são serializados.
type Store struct {
	mu    sync.Mutex
	st    *state
	path  string
	dirty bool
}

// New cria um store vazio e volátil.
func New() *Store {
	return &Store{st: newState()}
}

// Open carrega o arquivo JSON em path (se existir) e grava nele a cada alteração confirmada.
// path vazio equivale a New().
func Open(path string) (*Store, error) {
	s := &Store{st: newState(), path: path}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("memory: ler %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, s.st); err != nil {
		return nil, fmt.Errorf("memory: arquivo %s inválido: %w", path, err)
	}
	if s.st.Items == nil {
		s.st.Items = make(map[string]*entity.Item)
	}
	return s, nil
}

// Close grava pendências no arquivo, se houver.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

// Items devolve o repositório de brindes fora de transação.
func (s *Store) Items() repository.ItemRepository { return &itemRepo{s: s} }

// Movements devolve o repositório do livro de estoque fora de transação.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// Branches devolve o repositório de filiais.
func (s *Store) Branches() repository.BranchRepository { return &branchRepo{s: s} }

// Catalog devolve o repositório de categorias e unidades.
func (s *Store) Catalog() repository.CatalogRepository { return &catalogRepo{s: s} }

// Suppliers devolve o repositório de fornecedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s: s} }

// Users devolve o repositório de usuários.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Audit devolve o repositório de auditoria.
func (s *Store) Audit() repository.AuditRepository { return &auditRepo{s: s} }

// Run executa fn com o mutex tomado; se fn falhar, o estado anterior é restaurado.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	err := fn(&itemRepo{s: s, tx: true}, &movementRepo{s: s, tx: true})
	if err != nil {
		s.st = snapshot
		s.dirty = false
		return err
	}
	return s.flush()
}

// read executa f com o estado travado (ou já travado pela transação).
func (s *Store) read(tx bool, f func(st *state) error) error {
	if !tx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return f(s.st)
}

// write como read, marcando o estado como alterado; fora de transação grava em seguida.
func (s *Store) write(tx bool, f func(st *state) error) error {
	if !tx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if err := f(s.st); err != nil {
		return err
	}
	s.dirty = true
	if tx {
		return nil
	}
	return s.flush()
}

// flush grava o estado de forma atômica (arquivo temporário + rename). Chamar com o mutex tomado.
func (s *Store) flush() error {
	if s.path == "" || !s.dirty {
		s.dirty = false
		return nil
	}
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return fmt.Errorf("memory: serializar: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("memory: criar diretório %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("memory: gravar %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("memory: renomear %s: %w", tmp, err)
	}
	s.dirty = false
	return nil
}
