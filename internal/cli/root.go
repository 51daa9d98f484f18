// Package cli implementa huevosctl: migraciones, carga inicial, saldo y tokens de desarrollo.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/postgres"
	"github.com/jhoicas/huevos-kikes-scm/pkg/config"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

type env struct {
	cfg *config.Config
	log *logger.Logger
	out io.Writer
}

// NewRootCmd construye el árbol de comandos. loadConfig permite inyectar la configuración en tests.
func NewRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "huevosctl",
		Short:         "Administración del SCM Huevos Kikes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			e.cfg = cfg
			e.out = cmd.OutOrStdout()
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newSaldoCmd(e),
		newTokenCmd(e),
	)
	return root
}

// withPool abre el pool de PostgreSQL para comandos que lo necesitan.
func (e *env) withPool(ctx context.Context, fn func(pool *pgxpool.Pool) error) error {
	if e.cfg.App.StoreDriver != config.StoreDriverPostgres {
		return fmt.Errorf("este comando requiere STORE_DRIVER=%s", config.StoreDriverPostgres)
	}
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	return fn(pool)
}
