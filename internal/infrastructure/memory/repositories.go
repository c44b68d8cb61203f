package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/directory"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// ── Brindes ──────────────────────────────────────────────────────────────────

type itemRepo struct {
	s  *Store
	tx bool
}

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.s.write(r.tx, func(st *state) error {
		if _, ok := st.Items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Items[item.ID] = item.Clone()
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.s.read(r.tx, func(st *state) error {
		out = st.Items[id].Clone()
		return nil
	})
	return out, err
}

func (r *itemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.s.write(r.tx, func(st *state) error {
		cur, ok := st.Items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		upd := item.Clone()
		upd.Quantity = cur.Quantity
		upd.Code = cur.Code
		upd.LogicalID = cur.LogicalID
		upd.CreatedAt = cur.CreatedAt
		upd.CreatedBy = cur.CreatedBy
		st.Items[item.ID] = upd
		return nil
	})
}

func (r *itemRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.tx, func(st *state) error {
		if _, ok := st.Items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Items, id)
		return nil
	})
}

func (r *itemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.s.read(r.tx, func(st *state) error {
		search := inventory.DescriptionKey(f.Search)
		for _, it := range st.Items {
			if f.Branch != "" && !inventory.SameBranch(it.Branch, f.Branch) {
				continue
			}
			if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
				continue
			}
			if f.Unit != "" && !strings.EqualFold(it.Unit, f.Unit) {
				continue
			}
			if search != "" && !strings.Contains(it.DescriptionKey, search) &&
				!strings.Contains(inventory.DescriptionKey(it.Code), search) {
				continue
			}
			out = append(out, it.Clone())
		}
		return nil
	})
	sortItems(out)
	return out, err
}

func (r *itemRepo) FindByKeyAndBranch(_ context.Context, key, branch string) (*entity.Item, error) {
	return r.find(func(it *entity.Item) bool {
		return it.DescriptionKey == key && inventory.SameBranch(it.Branch, branch)
	})
}

func (r *itemRepo) FindByLogicalIDAndBranch(_ context.Context, logicalID, branch string) (*entity.Item, error) {
	return r.find(func(it *entity.Item) bool {
		return it.LogicalID == logicalID && inventory.SameBranch(it.Branch, branch)
	})
}

// find devolve a linha de menor código que satisfaz match.
func (r *itemRepo) find(match func(*entity.Item) bool) (*entity.Item, error) {
	var hits []*entity.Item
	err := r.s.read(r.tx, func(st *state) error {
		for _, it := range st.Items {
			if match(it) {
				hits = append(hits, it)
			}
		}
		return nil
	})
	if err != nil || len(hits) == 0 {
		return nil, err
	}
	sortItems(hits)
	return hits[0].Clone(), nil
}

func (r *itemRepo) ListCodes(_ context.Context) ([]string, error) {
	var out []string
	err := r.s.read(r.tx, func(st *state) error {
		out = make([]string, 0, len(st.Items))
		for _, it := range st.Items {
			out = append(out, it.Code)
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) AdjustQuantity(_ context.Context, id string, delta int64) (bool, error) {
	applied := false
	err := r.s.write(r.tx, func(st *state) error {
		it, ok := st.Items[id]
		if !ok || it.Quantity+delta < 0 {
			return nil
		}
		it.Quantity += delta
		applied = true
		return nil
	})
	return applied, err
}

// sortItems ordena por código (numérico quando possível), depois por filial.
func sortItems(items []*entity.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if len(a.Code) != len(b.Code) {
			return len(a.Code) < len(b.Code)
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Branch < b.Branch
	})
}

// ── Movimentações ────────────────────────────────────────────────────────────

type movementRepo struct {
	s  *Store
	tx bool
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.s.write(r.tx, func(st *state) error {
		if _, ok := st.Items[m.ItemID]; !ok {
			return domain.ErrNotFound
		}
		cp := *m
		st.Movements = append(st.Movements, &cp)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.s.read(r.tx, func(st *state) error {
		// do mais novo para o mais antigo; a ordenação estável preserva isso nos empates
		for i := len(st.Movements) - 1; i >= 0; i-- {
			m := st.Movements[i]
			if f.ItemID != "" && m.ItemID != f.ItemID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			cp := *m
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, err
}

func (r *movementRepo) ExistsForItem(_ context.Context, itemID string) (bool, error) {
	found := false
	err := r.s.read(r.tx, func(st *state) error {
		for _, m := range st.Movements {
			if m.ItemID == itemID {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

// ── Filiais ──────────────────────────────────────────────────────────────────

type branchRepo struct{ s *Store }

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	return r.s.write(false, func(st *state) error {
		for _, cur := range st.Branches {
			if inventory.SameBranch(cur.Name, b.Name) || cur.Number == b.Number {
				return domain.ErrDuplicate
			}
		}
		cp := *b
		st.Branches = append(st.Branches, &cp)
		return nil
	})
}

func (r *branchRepo) GetByName(_ context.Context, name string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.s.read(false, func(st *state) error {
		for _, b := range st.Branches {
			if inventory.SameBranch(b.Name, name) {
				cp := *b
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *branchRepo) List(_ context.Context, activeOnly bool) ([]*entity.Branch, error) {
	var out []*entity.Branch
	err := r.s.read(false, func(st *state) error {
		for _, b := range st.Branches {
			if activeOnly && !b.Active {
				continue
			}
			cp := *b
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, err
}

func (r *branchRepo) Update(_ context.Context, b *entity.Branch) error {
	return r.s.write(false, func(st *state) error {
		for _, cur := range st.Branches {
			if cur.ID != b.ID && (inventory.SameBranch(cur.Name, b.Name) || cur.Number == b.Number) {
				return domain.ErrDuplicate
			}
		}
		for i, cur := range st.Branches {
			if cur.ID == b.ID {
				cp := *b
				st.Branches[i] = &cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── Categorias e unidades ────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r *catalogRepo) CreateCategory(_ context.Context, c *entity.Category) error {
	return r.s.write(false, func(st *state) error {
		for _, cur := range st.Categories {
			if strings.EqualFold(cur.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		cp := *c
		st.Categories = append(st.Categories, &cp)
		return nil
	})
}

func (r *catalogRepo) ListCategories(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.read(false, func(st *state) error {
		for _, c := range st.Categories {
			if activeOnly && !c.Active {
				continue
			}
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *catalogRepo) UpdateCategory(_ context.Context, c *entity.Category) error {
	return r.s.write(false, func(st *state) error {
		idx := -1
		for i, cur := range st.Categories {
			if cur.ID == c.ID {
				idx = i
			} else if strings.EqualFold(cur.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		cp := *c
		st.Categories[idx] = &cp
		return nil
	})
}

func (r *catalogRepo) DeleteCategory(_ context.Context, name string) error {
	return r.s.write(false, func(st *state) error {
		for i, c := range st.Categories {
			if strings.EqualFold(c.Name, name) {
				st.Categories = append(st.Categories[:i], st.Categories[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *catalogRepo) CreateUnit(_ context.Context, u *entity.Unit) error {
	return r.s.write(false, func(st *state) error {
		for _, cur := range st.Units {
			if strings.EqualFold(cur.Code, u.Code) {
				return domain.ErrDuplicate
			}
		}
		cp := *u
		st.Units = append(st.Units, &cp)
		return nil
	})
}

func (r *catalogRepo) ListUnits(_ context.Context, activeOnly bool) ([]*entity.Unit, error) {
	var out []*entity.Unit
	err := r.s.read(false, func(st *state) error {
		for _, u := range st.Units {
			if activeOnly && !u.Active {
				continue
			}
			cp := *u
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (r *catalogRepo) UpdateUnit(_ context.Context, u *entity.Unit) error {
	return r.s.write(false, func(st *state) error {
		idx := -1
		for i, cur := range st.Units {
			if cur.ID == u.ID {
				idx = i
			} else if strings.EqualFold(cur.Code, u.Code) {
				return domain.ErrDuplicate
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		cp := *u
		st.Units[idx] = &cp
		return nil
	})
}

func (r *catalogRepo) DeleteUnit(_ context.Context, code string) error {
	return r.s.write(false, func(st *state) error {
		for i, u := range st.Units {
			if strings.EqualFold(u.Code, code) {
				st.Units = append(st.Units[:i], st.Units[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── Fornecedores ─────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	return r.s.write(false, func(st *state) error {
		for _, cur := range st.Suppliers {
			if strings.EqualFold(cur.Code, sup.Code) {
				return domain.ErrDuplicate
			}
		}
		cp := *sup
		st.Suppliers = append(st.Suppliers, &cp)
		return nil
	})
}

func (r *supplierRepo) GetByCode(_ context.Context, code string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.read(false, func(st *state) error {
		for _, cur := range st.Suppliers {
			if strings.EqualFold(cur.Code, strings.TrimSpace(code)) {
				cp := *cur
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) List(_ context.Context, f repository.SupplierFilter) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.s.read(false, func(st *state) error {
		search := inventory.DescriptionKey(f.Search)
		for _, cur := range st.Suppliers {
			if f.ActiveOnly && !cur.Active {
				continue
			}
			if search != "" && !strings.Contains(directory.SupplierSearchKey(cur), search) {
				continue
			}
			cp := *cur
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Code) != len(out[j].Code) {
			return len(out[i].Code) < len(out[j].Code)
		}
		return out[i].Code < out[j].Code
	})
	return out, err
}

func (r *supplierRepo) ListCodes(_ context.Context) ([]string, error) {
	var out []string
	err := r.s.read(false, func(st *state) error {
		for _, cur := range st.Suppliers {
			out = append(out, cur.Code)
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	return r.s.write(false, func(st *state) error {
		idx := -1
		for i, cur := range st.Suppliers {
			if cur.ID == sup.ID {
				idx = i
			} else if strings.EqualFold(cur.Code, sup.Code) {
				return domain.ErrDuplicate
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		cp := *sup
		st.Suppliers[idx] = &cp
		return nil
	})
}

func (r *supplierRepo) Delete(_ context.Context, id string) error {
	return r.s.write(false, func(st *state) error {
		for i, cur := range st.Suppliers {
			if cur.ID == id {
				st.Suppliers = append(st.Suppliers[:i], st.Suppliers[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── Usuários ─────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.write(false, func(st *state) error {
		for _, cur := range st.Users {
			if strings.EqualFold(cur.Username, u.Username) {
				return domain.ErrDuplicate
			}
		}
		cp := *u
		st.Users = append(st.Users, &cp)
		return nil
	})
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(false, func(st *state) error {
		for _, cur := range st.Users {
			if strings.EqualFold(cur.Username, strings.TrimSpace(username)) {
				cp := *cur
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List(_ context.Context, activeOnly bool) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.read(false, func(st *state) error {
		for _, cur := range st.Users {
			if activeOnly && !cur.Active {
				continue
			}
			cp := *cur
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, err
}

func (r *userRepo) CountByBranch(_ context.Context, branch string) (int, error) {
	n := 0
	err := r.s.read(false, func(st *state) error {
		for _, cur := range st.Users {
			if inventory.SameBranch(cur.Branch, branch) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.s.write(false, func(st *state) error {
		idx := -1
		for i, cur := range st.Users {
			if cur.ID == u.ID {
				idx = i
			} else if strings.EqualFold(cur.Username, u.Username) {
				return domain.ErrDuplicate
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		cp := *u
		st.Users[idx] = &cp
		return nil
	})
}

// ── Auditoria ────────────────────────────────────────────────────────────────

type auditRepo struct{ s *Store }

func (r *auditRepo) Create(_ context.Context, rec *entity.AuditRecord) error {
	return r.s.write(false, func(st *state) error {
		cp := *rec
		st.Audit = append(st.Audit, &cp)
		return nil
	})
}

func (r *auditRepo) List(_ context.Context, table, recordID string, limit int) ([]*entity.AuditRecord, error) {
	var out []*entity.AuditRecord
	err := r.s.read(false, func(st *state) error {
		for i := len(st.Audit) - 1; i >= 0; i-- {
			rec := st.Audit[i]
			if table != "" && rec.Table != table {
				continue
			}
			if recordID != "" && rec.RecordID != recordID {
				continue
			}
			cp := *rec
			out = append(out, &cp)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}
