package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/brindez/controle-brindes/internal/infrastructure/storage"
	"github.com/brindez/controle-brindes/internal/interfaces/cli"
	"github.com/brindez/controle-brindes/pkg/config"
	"github.com/brindez/controle-brindes/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "carregar configuração:", err)
		return 2
	}

	log, err := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "iniciar log:", err)
		return 2
	}
	defer log.Close()

	auditLog, err := logger.NewAudit(cfg.Log.AuditFile)
	if err != nil {
		log.Error().Err(err).Msg("log de auditoria")
		return 2
	}
	defer auditLog.Close()

	log.Debug().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Storage.Driver).
		Msg("iniciando aplicação")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("abrir armazenamento")
		fmt.Fprintln(os.Stderr, "Não foi possível abrir o banco de dados:", err)
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error().Err(err).Msg("fechar armazenamento")
		}
	}()

	deps := cli.NewDeps(backend, cfg, actingUser(cfg.App.User), log, auditLog)
	if err := cli.NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.Report(log, err))
		return 1
	}
	return 0
}

// actingUser usa BRINDES_USER e, na ausência, o login do sistema operacional.
func actingUser(configured string) string {
	if configured != "" {
		return configured
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return ""
}
