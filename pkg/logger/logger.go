package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opções do logger.
type Config struct {
	Env   string // development -> console legível; production -> JSON
	Level string // trace, debug, info, warn, error
	File  string // se definido, também grava JSON neste arquivo
}

// Logger wrapper sobre zerolog para injeção e consistência.
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// New cria um logger estruturado. Em development usa saída legível; em production JSON.
// A saída de console vai para stderr para não se misturar com as tabelas da CLI.
func New(cfg Config) (*Logger, error) {
	var console io.Writer = os.Stderr
	if cfg.Env == "development" {
		console = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	var (
		w      = console
		closer io.Closer
	)
	if cfg.File != "" {
		f, err := openAppend(cfg.File)
		if err != nil {
			return nil, err
		}
		w = zerolog.MultiLevelWriter(console, f)
		closer = f
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	// Redirecionar o logger global do zerolog para bibliotecas que o usem
	log.Logger = zl

	return &Logger{zl: zl, closer: closer}, nil
}

// NewAudit cria o logger da trilha de auditoria: uma linha JSON por registro, só em arquivo.
// Sem arquivo devolve um logger desativado.
func NewAudit(file string) (*Logger, error) {
	if file == "" {
		return Nop(), nil
	}
	f, err := openAppend(file)
	if err != nil {
		return nil, err
	}
	zl := zerolog.New(f).With().Timestamp().Str("stream", "audit").Logger()
	return &Logger{zl: zl, closer: f}, nil
}

// FromWriter cria um logger JSON sobre w. Útil em testes.
func FromWriter(w io.Writer, level string) *Logger {
	return &Logger{zl: zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()}
}

// Nop devolve um logger que descarta tudo.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logger: criar diretório %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: abrir %s: %w", path, err)
	}
	return f, nil
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace, Debug, Info, Warn, Error delegados ao zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With cria um sublogger com campos fixos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Named devolve um sublogger com o campo "component".
func (l *Logger) Named(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Zerolog devolve o logger interno caso se precise da API direta.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Close fecha o arquivo de saída, se houver.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
