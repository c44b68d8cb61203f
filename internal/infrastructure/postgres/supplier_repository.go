package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/directory"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/inventory"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, codigo, nome, contato_nome, telefone, email, endereco, cidade, estado, cep, cnpj,
	observacoes, ativo, usuario_cadastro, created_at, updated_at`

// SupplierRepo implementação de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository constrói o adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create insere o fornecedor; o índice único em UPPER(codigo) barra duplicados.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `INSERT INTO fornecedores (` + supplierColumns + `, busca_chave)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Code, s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.City, s.State, s.ZipCode, s.CNPJ,
		s.Notes, s.Active, s.CreatedBy, s.CreatedAt.UTC(), s.UpdatedAt.UTC(), directory.SupplierSearchKey(s),
	)
	if err != nil {
		return fmt.Errorf("create supplier: %w", translate(err))
	}
	return nil
}

// GetByCode busca pelo código, sem diferenciar maiúsculas.
func (r *SupplierRepo) GetByCode(ctx context.Context, code string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM fornecedores WHERE UPPER(codigo) = UPPER($1) LIMIT 1`
	s, err := scanSupplier(r.q.QueryRow(ctx, query, strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// List filtra por situação e pelo trecho em busca_chave.
func (r *SupplierRepo) List(ctx context.Context, f repository.SupplierFilter) ([]*entity.Supplier, error) {
	var (
		conds []string
		args  []any
	)
	if f.ActiveOnly {
		conds = append(conds, "ativo")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, inventory.SearchPattern(s))
		conds = append(conds, fmt.Sprintf(`busca_chave LIKE $%d ESCAPE '\'`, len(args)))
	}
	query := `SELECT ` + supplierColumns + ` FROM fornecedores`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY LENGTH(codigo), codigo`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListCodes todos os códigos, para gerar o próximo.
func (r *SupplierRepo) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT codigo FROM fornecedores`)
	if err != nil {
		return nil, fmt.Errorf("list supplier codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan supplier codes: %w", err)
	}
	return codes, nil
}

// Update grava todos os campos editáveis.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE fornecedores
		SET codigo = $2, nome = $3, contato_nome = $4, telefone = $5, email = $6, endereco = $7, cidade = $8,
		    estado = $9, cep = $10, cnpj = $11, observacoes = $12, ativo = $13, updated_at = $14, busca_chave = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Code, s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.City,
		s.State, s.ZipCode, s.CNPJ, s.Notes, s.Active, s.UpdatedAt.UTC(), directory.SupplierSearchKey(s),
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove pelo ID.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM fornecedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	var contact, phone, email, address, city, state, zip, cnpj, notes, createdBy *string
	if err := row.Scan(
		&s.ID, &s.Code, &s.Name, &contact, &phone, &email, &address, &city, &state, &zip, &cnpj,
		&notes, &s.Active, &createdBy, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.ContactName = deref(contact)
	s.Phone = deref(phone)
	s.Email = deref(email)
	s.Address = deref(address)
	s.City = deref(city)
	s.State = deref(state)
	s.ZipCode = deref(zip)
	s.CNPJ = deref(cnpj)
	s.Notes = deref(notes)
	s.CreatedBy = deref(createdBy)
	return &s, nil
}
