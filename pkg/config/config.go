package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de armazenamento suportados.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	Storage StorageConfig
	DB      DBConfig
	Rules   RulesConfig
	Cache   CacheConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, production
	Name string
	User string // usuário atuante; vazio = login do sistema operacional
}

// LogConfig destino e nível dos logs.
type LogConfig struct {
	Level     string
	File      string // log geral (vazio = só stdout)
	AuditFile string // trilha de auditoria (vazio = só banco)
}

// StorageConfig seleciona o backend de dados, uma única vez na inicialização.
type StorageConfig struct {
	Driver       string // memory, sqlite, postgres
	SQLitePath   string
	MockDataPath string // arquivo JSON do backend em memória (vazio = volátil)
}

// DBConfig configuração de PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o construído com DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve a connection string para PostgreSQL com URL encoding da senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RulesConfig parâmetros das regras de negócio.
type RulesConfig struct {
	JustificationMinLength int   // mínimo de caracteres da justificativa (saída e transferência)
	StockMinimum           int64 // itens com quantidade <= este valor aparecem como estoque baixo
}

// CacheConfig memo das listas de apoio (categorias, unidades, filiais).
type CacheConfig struct {
	TTL time.Duration
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, STORAGE_DRIVER, SQLITE_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	// Também tenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper monta a Config a partir de uma instância já carregada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "controle-brindes"),
			User: getString(v, "BRINDES_USER", ""),
		},
		Log: LogConfig{
			Level:     getString(v, "LOG_LEVEL", "warn"),
			File:      getString(v, "LOG_FILE", ""),
			AuditFile: getString(v, "AUDIT_LOG_FILE", ""),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(getString(v, "STORAGE_DRIVER", DriverSQLite)),
			SQLitePath:   getString(v, "SQLITE_PATH", "brindez.db"),
			MockDataPath: getString(v, "MOCK_DATA_PATH", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "brindez"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Rules: RulesConfig{
			JustificationMinLength: getInt(v, "JUSTIFICATION_MIN_LENGTH", 10),
			StockMinimum:           int64(getInt(v, "STOCK_MINIMUM", 10)),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getInt(v, "CACHE_TTL_SECONDS", 60)) * time.Second,
		},
	}

	switch cfg.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %q (use memory, sqlite ou postgres)", cfg.Storage.Driver)
	}
	if cfg.Rules.JustificationMinLength < 0 {
		return nil, fmt.Errorf("JUSTIFICATION_MIN_LENGTH não pode ser negativo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
