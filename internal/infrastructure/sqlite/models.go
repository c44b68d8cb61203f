package sqlite

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brindez/controle-brindes/internal/domain/directory"
	"github.com/brindez/controle-brindes/internal/domain/entity"
)

// itemModel tabela brindes.
type itemModel struct {
	ID             string          `gorm:"column:id;primaryKey;size:36"`
	Code           string          `gorm:"column:codigo;size:20;not null;index"`
	LogicalID      string          `gorm:"column:logical_id;size:36;index:idx_brindes_logical_filial"`
	Description    string          `gorm:"column:descricao;size:200;not null"`
	DescriptionKey string          `gorm:"column:descricao_chave;size:200;index:idx_brindes_chave_filial"`
	Category       string          `gorm:"column:categoria;size:50;not null"`
	Unit           string          `gorm:"column:unidade_medida;size:10;not null"`
	Branch         string          `gorm:"column:filial;size:100;not null;index:idx_brindes_chave_filial;index:idx_brindes_logical_filial"`
	Quantity       int64           `gorm:"column:quantidade;not null;default:0;check:chk_brindes_quantidade,quantidade >= 0"`
	UnitPrice      decimal.Decimal `gorm:"column:valor_unitario;type:decimal(12,2);not null"`
	Notes          string          `gorm:"column:observacoes;size:500"`
	CreatedBy      string          `gorm:"column:usuario_cadastro;size:100"`
	CreatedAt      time.Time       `gorm:"column:data_cadastro;autoCreateTime:false"`
	UpdatedAt      time.Time       `gorm:"column:data_atualizacao;autoUpdateTime:false"`
}

func (itemModel) TableName() string { return "brindes" }

func newItemModel(i *entity.Item) *itemModel {
	return &itemModel{
		ID:             i.ID,
		Code:           i.Code,
		LogicalID:      i.LogicalID,
		Description:    i.Description,
		DescriptionKey: i.DescriptionKey,
		Category:       i.Category,
		Unit:           i.Unit,
		Branch:         i.Branch,
		Quantity:       i.Quantity,
		UnitPrice:      i.UnitPrice,
		Notes:          i.Notes,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt.UTC(),
		UpdatedAt:      i.UpdatedAt.UTC(),
	}
}

func (m *itemModel) toEntity() *entity.Item {
	return &entity.Item{
		ID:             m.ID,
		Code:           m.Code,
		LogicalID:      m.LogicalID,
		Description:    m.Description,
		DescriptionKey: m.DescriptionKey,
		Category:       m.Category,
		Unit:           m.Unit,
		Branch:         m.Branch,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// movementModel tabela movimentacoes. A ordem de inserção vem do rowid.
type movementModel struct {
	ID                string    `gorm:"column:id;primaryKey;size:36"`
	TransactionID     string    `gorm:"column:transacao_id;size:36;index"`
	ItemID            string    `gorm:"column:brinde_id;size:36;not null;index"`
	Type              string    `gorm:"column:tipo;size:30;not null;index"`
	Quantity          int64     `gorm:"column:quantidade;not null;check:chk_movimentacoes_quantidade,quantidade > 0"`
	User              string    `gorm:"column:usuario;size:100"`
	Justification     string    `gorm:"column:justificativa;size:500"`
	Notes             string    `gorm:"column:observacoes;size:500"`
	Destination       string    `gorm:"column:destino;size:200"`
	OriginBranch      string    `gorm:"column:filial_origem;size:100"`
	DestinationBranch string    `gorm:"column:filial_destino;size:100"`
	CreatedAt         time.Time `gorm:"column:data_hora;not null;index;autoCreateTime:false"`
}

func (movementModel) TableName() string { return "movimentacoes" }

func newMovementModel(m *entity.Movement) *movementModel {
	return &movementModel{
		ID:                m.ID,
		TransactionID:     m.TransactionID,
		ItemID:            m.ItemID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		User:              m.User,
		Justification:     m.Justification,
		Notes:             m.Notes,
		Destination:       m.Destination,
		OriginBranch:      m.OriginBranch,
		DestinationBranch: m.DestinationBranch,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}

func (m *movementModel) toEntity() *entity.Movement {
	return &entity.Movement{
		ID:                m.ID,
		TransactionID:     m.TransactionID,
		ItemID:            m.ItemID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		User:              m.User,
		Justification:     m.Justification,
		Notes:             m.Notes,
		Destination:       m.Destination,
		OriginBranch:      m.OriginBranch,
		DestinationBranch: m.DestinationBranch,
		CreatedAt:         m.CreatedAt,
	}
}

// branchModel tabela filiais.
type branchModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Number    string    `gorm:"column:numero;size:10;not null;uniqueIndex"`
	Name      string    `gorm:"column:nome;size:100;not null;uniqueIndex"`
	City      string    `gorm:"column:cidade;size:100;not null"`
	Address   string    `gorm:"column:endereco;size:200"`
	Phone     string    `gorm:"column:telefone;size:20"`
	Active    bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (branchModel) TableName() string { return "filiais" }

func (m *branchModel) toEntity() *entity.Branch {
	return &entity.Branch{
		ID:        m.ID,
		Number:    m.Number,
		Name:      m.Name,
		City:      m.City,
		Address:   m.Address,
		Phone:     m.Phone,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// categoryModel tabela categorias.
type categoryModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Name        string    `gorm:"column:nome;size:50;not null;uniqueIndex"`
	Description string    `gorm:"column:descricao;size:200"`
	Active      bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (categoryModel) TableName() string { return "categorias" }

// unitModel tabela unidades_medida.
type unitModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Code        string    `gorm:"column:codigo;size:10;not null;uniqueIndex"`
	Description string    `gorm:"column:descricao;size:50;not null"`
	Active      bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (unitModel) TableName() string { return "unidades_medida" }

// supplierModel tabela fornecedores. busca_chave guarda código, nome e contato normalizados.
type supplierModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Code        string    `gorm:"column:codigo;size:20;not null;uniqueIndex"`
	Name        string    `gorm:"column:nome;size:150;not null;index"`
	ContactName string    `gorm:"column:contato_nome;size:100"`
	Phone       string    `gorm:"column:telefone;size:20"`
	Email       string    `gorm:"column:email;size:150"`
	Address     string    `gorm:"column:endereco;size:200"`
	City        string    `gorm:"column:cidade;size:100"`
	State       string    `gorm:"column:estado;size:2"`
	ZipCode     string    `gorm:"column:cep;size:10"`
	CNPJ        string    `gorm:"column:cnpj;size:18"`
	Notes       string    `gorm:"column:observacoes;size:500"`
	SearchKey   string    `gorm:"column:busca_chave;size:500"`
	Active      bool      `gorm:"column:ativo;not null;default:true;index"`
	CreatedBy   string    `gorm:"column:usuario_cadastro;size:100"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (supplierModel) TableName() string { return "fornecedores" }

func newSupplierModel(s *entity.Supplier) *supplierModel {
	return &supplierModel{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		ZipCode:     s.ZipCode,
		CNPJ:        s.CNPJ,
		Notes:       s.Notes,
		SearchKey:   directory.SupplierSearchKey(s),
		Active:      s.Active,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func (m *supplierModel) toEntity() *entity.Supplier {
	return &entity.Supplier{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		City:        m.City,
		State:       m.State,
		ZipCode:     m.ZipCode,
		CNPJ:        m.CNPJ,
		Notes:       m.Notes,
		Active:      m.Active,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// userModel tabela usuarios.
type userModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Username  string    `gorm:"column:username;size:50;not null;uniqueIndex"`
	Name      string    `gorm:"column:nome;size:100;not null"`
	Email     string    `gorm:"column:email;size:150"`
	Branch    string    `gorm:"column:filial;size:100;not null;index"`
	Profile   string    `gorm:"column:perfil;size:10;not null;check:chk_usuarios_perfil,perfil IN ('Admin','Gestor','Usuario')"`
	Active    bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (userModel) TableName() string { return "usuarios" }

func newUserModel(u *entity.User) *userModel {
	return &userModel{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Branch:    u.Branch,
		Profile:   u.Profile,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Name:      m.Name,
		Email:     m.Email,
		Branch:    m.Branch,
		Profile:   m.Profile,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// auditModel tabela logs_auditoria.
type auditModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Table     string    `gorm:"column:tabela;size:50;not null;index:idx_auditoria_registro"`
	Action    string    `gorm:"column:acao;size:10;not null"`
	RecordID  string    `gorm:"column:registro_id;size:36;index:idx_auditoria_registro"`
	Before    string    `gorm:"column:dados_anteriores;type:text"`
	After     string    `gorm:"column:dados_novos;type:text"`
	UserID    string    `gorm:"column:usuario;size:100"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
}

func (auditModel) TableName() string { return "logs_auditoria" }

func newAuditModel(r *entity.AuditRecord) *auditModel {
	return &auditModel{
		ID:        r.ID,
		Table:     r.Table,
		Action:    r.Action,
		RecordID:  r.RecordID,
		Before:    string(r.Before),
		After:     string(r.After),
		UserID:    r.UserID,
		Timestamp: r.Timestamp.UTC(),
	}
}

func (m *auditModel) toEntity() *entity.AuditRecord {
	r := &entity.AuditRecord{
		ID:        m.ID,
		Table:     m.Table,
		Action:    m.Action,
		RecordID:  m.RecordID,
		UserID:    m.UserID,
		Timestamp: m.Timestamp,
	}
	if m.Before != "" {
		r.Before = json.RawMessage(m.Before)
	}
	if m.After != "" {
		r.After = json.RawMessage(m.After)
	}
	return r
}

// models todas as tabelas, na ordem de criação.
func models() []any {
	return []any{
		&branchModel{},
		&categoryModel{},
		&unitModel{},
		&supplierModel{},
		&userModel{},
		&itemModel{},
		&movementModel{},
		&auditModel{},
	}
}
