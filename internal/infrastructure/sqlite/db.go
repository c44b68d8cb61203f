// Package sqlite implementa os repositórios sobre SQLite com gorm e o driver
// puro Go github.com/glebarez/sqlite. É o backend padrão da aplicação.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/pkg/logger"
)

// DB conexão gorm com o arquivo SQLite.
type DB struct {
	gdb *gorm.DB
}

// Open abre (ou cria) o banco em path e aplica o AutoMigrate. ":memory:" cria um banco volátil.
// Usa uma única conexão: SQLite serializa os escritores e um banco em memória só existe na conexão que o criou.
func Open(path string, log *logger.Logger) (*DB, error) {
	if log == nil {
		log = logger.Nop()
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log.Named("gorm")}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: obter *sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := gdb.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		return nil, fmt.Errorf("sqlite: busy_timeout: %w", err)
	}
	if err := gdb.AutoMigrate(models()...); err != nil {
		return nil, fmt.Errorf("sqlite: migrar: %w", err)
	}
	return &DB{gdb: gdb}, nil
}

// Close fecha a conexão.
func (d *DB) Close() error {
	sqlDB, err := d.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Items devolve o repositório de brindes fora de transação.
func (d *DB) Items() repository.ItemRepository { return &itemRepo{db: d.gdb} }

// Movements devolve o repositório do livro de estoque fora de transação.
func (d *DB) Movements() repository.MovementRepository { return &movementRepo{db: d.gdb} }

// Branches devolve o repositório de filiais.
func (d *DB) Branches() repository.BranchRepository { return &branchRepo{db: d.gdb} }

// Catalog devolve o repositório de categorias e unidades.
func (d *DB) Catalog() repository.CatalogRepository { return &catalogRepo{db: d.gdb} }

// Suppliers devolve o repositório de fornecedores.
func (d *DB) Suppliers() repository.SupplierRepository { return &supplierRepo{db: d.gdb} }

// Users devolve o repositório de usuários.
func (d *DB) Users() repository.UserRepository { return &userRepo{db: d.gdb} }

// Audit devolve o repositório de auditoria.
func (d *DB) Audit() repository.AuditRepository { return &auditRepo{db: d.gdb} }

// Run executa fn dentro de uma transação gorm: Commit se fn devolver nil, Rollback caso contrário.
func (d *DB) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	return d.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&itemRepo{db: tx}, &movementRepo{db: tx})
	})
}

// gormWriter encaminha as mensagens do gorm ao zerolog.
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}

// isUniqueViolation detecta violação de índice único.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate converte erros do gorm nos erros de domínio.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	default:
		return err
	}
}
