package sqlite

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

// codeOrder ordena códigos numéricos corretamente mesmo acima de 999.
const codeOrder = "LENGTH(codigo), codigo, filial"

// ── Brindes ──────────────────────────────────────────────────────────────────

type itemRepo struct{ db *gorm.DB }

func (r *itemRepo) Create(ctx context.Context, item *entity.Item) error {
	return translate(r.db.WithContext(ctx).Create(newItemModel(item)).Error)
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *itemRepo) Update(ctx context.Context, item *entity.Item) error {
	m := newItemModel(item)
	res := r.db.WithContext(ctx).Model(&itemModel{}).Where("id = ?", item.ID).
		Select("descricao", "descricao_chave", "categoria", "unidade_medida", "filial",
			"valor_unitario", "observacoes", "data_atualizacao").
		Updates(m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&itemModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	q := r.db.WithContext(ctx).Model(&itemModel{})
	if f.Branch != "" {
		q = q.Where("LOWER(filial) = LOWER(?)", strings.TrimSpace(f.Branch))
	}
	if f.Category != "" {
		q = q.Where("LOWER(categoria) = LOWER(?)", f.Category)
	}
	if f.Unit != "" {
		q = q.Where("LOWER(unidade_medida) = LOWER(?)", f.Unit)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := inventory.SearchPattern(s)
		q = q.Where(`descricao_chave LIKE ? ESCAPE '\' OR LOWER(codigo) LIKE ? ESCAPE '\'`, like, like)
	}
	var rows []itemModel
	if err := q.Order(codeOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Item, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *itemRepo) FindByKeyAndBranch(ctx context.Context, key, branch string) (*entity.Item, error) {
	return r.first(r.db.WithContext(ctx).
		Where("descricao_chave = ? AND LOWER(filial) = LOWER(?)", key, branch).
		Order(codeOrder))
}

func (r *itemRepo) FindByLogicalIDAndBranch(ctx context.Context, logicalID, branch string) (*entity.Item, error) {
	return r.first(r.db.WithContext(ctx).
		Where("logical_id = ? AND LOWER(filial) = LOWER(?)", logicalID, branch).
		Order(codeOrder))
}

func (r *itemRepo) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).Model(&itemModel{}).Pluck("codigo", &codes).Error
	return codes, err
}

// AdjustQuantity UPDATE condicional; RowsAffected == 0 significa saldo insuficiente ou id inexistente.
func (r *itemRepo) AdjustQuantity(ctx context.Context, id string, delta int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&itemModel{}).
		Where("id = ? AND quantidade + ? >= 0", id, delta).
		Updates(map[string]any{
			"quantidade":       gorm.Expr("quantidade + ?", delta),
			"data_atualizacao": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *itemRepo) first(q *gorm.DB) (*entity.Item, error) {
	var m itemModel
	err := q.Limit(1).Find(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, nil
	}
	return m.toEntity(), nil
}

// ── Movimentações ────────────────────────────────────────────────────────────

type movementRepo struct{ db *gorm.DB }

func (r *movementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return translate(r.db.WithContext(ctx).Create(newMovementModel(m)).Error)
}

func (r *movementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	q := r.db.WithContext(ctx).Model(&movementModel{})
	if f.ItemID != "" {
		q = q.Where("brinde_id = ?", f.ItemID)
	}
	if f.Type != "" {
		q = q.Where("tipo = ?", f.Type)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var rows []movementModel
	if err := q.Order("data_hora DESC, rowid DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Movement, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *movementRepo) ExistsForItem(ctx context.Context, itemID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&movementModel{}).Where("brinde_id = ?", itemID).Count(&n).Error
	return n > 0, err
}

// ── Filiais ──────────────────────────────────────────────────────────────────

type branchRepo struct{ db *gorm.DB }

func (r *branchRepo) Create(ctx context.Context, b *entity.Branch) error {
	var n int64
	err := r.db.WithContext(ctx).Model(&branchModel{}).
		Where("LOWER(nome) = LOWER(?) OR numero = ?", strings.TrimSpace(b.Name), b.Number).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDuplicate
	}
	m := &branchModel{
		ID:        b.ID,
		Number:    b.Number,
		Name:      b.Name,
		City:      b.City,
		Address:   b.Address,
		Phone:     b.Phone,
		Active:    b.Active,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
	// gorm omite zero values com default; ativo=false precisa ir explícito
	return translate(r.db.WithContext(ctx).Select("*").Create(m).Error)
}

func (r *branchRepo) GetByName(ctx context.Context, name string) (*entity.Branch, error) {
	var m branchModel
	err := r.db.WithContext(ctx).Where("LOWER(nome) = LOWER(?)", strings.TrimSpace(name)).Limit(1).Find(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, nil
	}
	return m.toEntity(), nil
}

func (r *branchRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Branch, error) {
	q := r.db.WithContext(ctx).Model(&branchModel{})
	if activeOnly {
		q = q.Where("ativo = ?", true)
	}
	var rows []branchModel
	if err := q.Order("numero").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Branch, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *branchRepo) Update(ctx context.Context, b *entity.Branch) error {
	var n int64
	err := r.db.WithContext(ctx).Model(&branchModel{}).
		Where("id <> ? AND (LOWER(nome) = LOWER(?) OR numero = ?)", b.ID, strings.TrimSpace(b.Name), b.Number).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDuplicate
	}
	res := r.db.WithContext(ctx).Model(&branchModel{}).Where("id = ?", b.ID).
		Updates(map[string]any{
			"numero":     b.Number,
			"nome":       b.Name,
			"cidade":     b.City,
			"endereco":   b.Address,
			"telefone":   b.Phone,
			"ativo":      b.Active,
			"updated_at": b.UpdatedAt.UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Categorias e unidades ────────────────────────────────────────────────────

type catalogRepo struct{ db *gorm.DB }

func (r *catalogRepo) CreateCategory(ctx context.Context, c *entity.Category) error {
	if exists, err := r.exists(ctx, &categoryModel{}, "LOWER(nome) = LOWER(?)", c.Name); err != nil {
		return err
	} else if exists {
		return domain.ErrDuplicate
	}
	m := &categoryModel{ID: c.ID, Name: c.Name, Description: c.Description, Active: c.Active, CreatedAt: c.CreatedAt.UTC()}
	return translate(r.db.WithContext(ctx).Select("*").Create(m).Error)
}

func (r *catalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	q := r.db.WithContext(ctx).Model(&categoryModel{})
	if activeOnly {
		q = q.Where("ativo = ?", true)
	}
	var rows []categoryModel
	if err := q.Order("nome").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entity.Category{ID: m.ID, Name: m.Name, Description: m.Description, Active: m.Active, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

func (r *catalogRepo) UpdateCategory(ctx context.Context, c *entity.Category) error {
	if exists, err := r.exists(ctx, &categoryModel{}, "LOWER(nome) = LOWER(?) AND id <> ?", c.Name, c.ID); err != nil {
		return err
	} else if exists {
		return domain.ErrDuplicate
	}
	res := r.db.WithContext(ctx).Model(&categoryModel{}).Where("id = ?", c.ID).
		Updates(map[string]any{"nome": c.Name, "descricao": c.Description, "ativo": c.Active})
	return rowsOrNotFound(res)
}

func (r *catalogRepo) DeleteCategory(ctx context.Context, name string) error {
	res := r.db.WithContext(ctx).Where("LOWER(nome) = LOWER(?)", name).Delete(&categoryModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepo) CreateUnit(ctx context.Context, u *entity.Unit) error {
	if exists, err := r.exists(ctx, &unitModel{}, "UPPER(codigo) = UPPER(?)", u.Code); err != nil {
		return err
	} else if exists {
		return domain.ErrDuplicate
	}
	m := &unitModel{ID: u.ID, Code: u.Code, Description: u.Description, Active: u.Active, CreatedAt: u.CreatedAt.UTC()}
	return translate(r.db.WithContext(ctx).Select("*").Create(m).Error)
}

func (r *catalogRepo) ListUnits(ctx context.Context, activeOnly bool) ([]*entity.Unit, error) {
	q := r.db.WithContext(ctx).Model(&unitModel{})
	if activeOnly {
		q = q.Where("ativo = ?", true)
	}
	var rows []unitModel
	if err := q.Order("codigo").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Unit, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entity.Unit{ID: m.ID, Code: m.Code, Description: m.Description, Active: m.Active, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

func (r *catalogRepo) UpdateUnit(ctx context.Context, u *entity.Unit) error {
	if exists, err := r.exists(ctx, &unitModel{}, "UPPER(codigo) = UPPER(?) AND id <> ?", u.Code, u.ID); err != nil {
		return err
	} else if exists {
		return domain.ErrDuplicate
	}
	res := r.db.WithContext(ctx).Model(&unitModel{}).Where("id = ?", u.ID).
		Updates(map[string]any{"codigo": u.Code, "descricao": u.Description, "ativo": u.Active})
	return rowsOrNotFound(res)
}

func (r *catalogRepo) DeleteUnit(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).Where("UPPER(codigo) = UPPER(?)", code).Delete(&unitModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepo) exists(ctx context.Context, model any, cond string, args ...any) (bool, error) {
	return exists(r.db.WithContext(ctx), model, cond, args...)
}

func exists(db *gorm.DB, model any, cond string, args ...any) (bool, error) {
	var n int64
	if err := db.Model(model).Where(cond, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowsOrNotFound traduz o resultado de um UPDATE/DELETE; nenhuma linha afetada vira domain.ErrNotFound.
func rowsOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Fornecedores ─────────────────────────────────────────────────────────────

type supplierRepo struct{ db *gorm.DB }

func (r *supplierRepo) Create(ctx context.Context, sup *entity.Supplier) error {
	if dup, err := exists(r.db.WithContext(ctx), &supplierModel{}, "UPPER(codigo) = UPPER(?)", sup.Code); err != nil {
		return err
	} else if dup {
		return domain.ErrDuplicate
	}
	return translate(r.db.WithContext(ctx).Select("*").Create(newSupplierModel(sup)).Error)
}

func (r *supplierRepo) GetByCode(ctx context.Context, code string) (*entity.Supplier, error) {
	var m supplierModel
	err := r.db.WithContext(ctx).Where("UPPER(codigo) = UPPER(?)", strings.TrimSpace(code)).Limit(1).Find(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, nil
	}
	return m.toEntity(), nil
}

func (r *supplierRepo) List(ctx context.Context, f repository.SupplierFilter) ([]*entity.Supplier, error) {
	q := r.db.WithContext(ctx).Model(&supplierModel{})
	if f.ActiveOnly {
		q = q.Where("ativo = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where(`busca_chave LIKE ? ESCAPE '\'`, inventory.SearchPattern(s))
	}
	var rows []supplierModel
	if err := q.Order("LENGTH(codigo), codigo").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Supplier, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *supplierRepo) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).Model(&supplierModel{}).Pluck("codigo", &codes).Error
	return codes, err
}

func (r *supplierRepo) Update(ctx context.Context, sup *entity.Supplier) error {
	if dup, err := exists(r.db.WithContext(ctx), &supplierModel{}, "UPPER(codigo) = UPPER(?) AND id <> ?", sup.Code, sup.ID); err != nil {
		return err
	} else if dup {
		return domain.ErrDuplicate
	}
	m := newSupplierModel(sup)
	res := r.db.WithContext(ctx).Model(&supplierModel{}).Where("id = ?", sup.ID).
		Updates(map[string]any{
			"codigo":       m.Code,
			"nome":         m.Name,
			"contato_nome": m.ContactName,
			"telefone":     m.Phone,
			"email":        m.Email,
			"endereco":     m.Address,
			"cidade":       m.City,
			"estado":       m.State,
			"cep":          m.ZipCode,
			"cnpj":         m.CNPJ,
			"observacoes":  m.Notes,
			"busca_chave":  m.SearchKey,
			"ativo":        m.Active,
			"updated_at":   m.UpdatedAt,
		})
	return rowsOrNotFound(res)
}

func (r *supplierRepo) Delete(ctx context.Context, id string) error {
	return rowsOrNotFound(r.db.WithContext(ctx).Where("id = ?", id).Delete(&supplierModel{}))
}

// ── Usuários ─────────────────────────────────────────────────────────────────

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	if dup, err := exists(r.db.WithContext(ctx), &userModel{}, "LOWER(username) = LOWER(?)", u.Username); err != nil {
		return err
	} else if dup {
		return domain.ErrDuplicate
	}
	return translate(r.db.WithContext(ctx).Select("*").Create(newUserModel(u)).Error)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).Limit(1).Find(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, nil
	}
	return m.toEntity(), nil
}

func (r *userRepo) List(ctx context.Context, activeOnly bool) ([]*entity.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if activeOnly {
		q = q.Where("ativo = ?", true)
	}
	var rows []userModel
	if err := q.Order("username").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *userRepo) CountByBranch(ctx context.Context, branch string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(filial) = LOWER(?)", strings.TrimSpace(branch)).Count(&n).Error
	return int(n), err
}

func (r *userRepo) Update(ctx context.Context, u *entity.User) error {
	if dup, err := exists(r.db.WithContext(ctx), &userModel{}, "LOWER(username) = LOWER(?) AND id <> ?", u.Username, u.ID); err != nil {
		return err
	} else if dup {
		return domain.ErrDuplicate
	}
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", u.ID).
		Updates(map[string]any{
			"username":   u.Username,
			"nome":       u.Name,
			"email":      u.Email,
			"filial":     u.Branch,
			"perfil":     u.Profile,
			"ativo":      u.Active,
			"updated_at": u.UpdatedAt.UTC(),
		})
	return rowsOrNotFound(res)
}

// ── Auditoria ────────────────────────────────────────────────────────────────

type auditRepo struct{ db *gorm.DB }

func (r *auditRepo) Create(ctx context.Context, rec *entity.AuditRecord) error {
	return translate(r.db.WithContext(ctx).Create(newAuditModel(rec)).Error)
}

func (r *auditRepo) List(ctx context.Context, table, recordID string, limit int) ([]*entity.AuditRecord, error) {
	q := r.db.WithContext(ctx).Model(&auditModel{})
	if table != "" {
		q = q.Where("tabela = ?", table)
	}
	if recordID != "" {
		q = q.Where("registro_id = ?", recordID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []auditModel
	if err := q.Order("timestamp DESC, rowid DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.AuditRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
