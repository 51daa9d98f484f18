package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/treasury"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/postgres"
	"github.com/jhoicas/huevos-kikes-scm/pkg/jwt"
)

// ─── migrate ────────────────────────────────────────────────────────────────

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				applied, err := postgres.Migrate(cmd.Context(), pool)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(e.out, "Sin migraciones pendientes.")
					return nil
				}
				for _, name := range applied {
					fmt.Fprintf(e.out, "aplicada: %s\n", name)
				}
				return nil
			})
		},
	}
}

// ─── seed ───────────────────────────────────────────────────────────────────

func newSeedCmd(e *env) *cobra.Command {
	var (
		stockA, stockAA, stockB int
		saldo                   string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea los grados A, AA y B con precios de catálogo y, opcionalmente, el saldo inicial",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stock := map[entity.Grade]int{entity.GradeA: stockA, entity.GradeAA: stockAA, entity.GradeB: stockB}
			for g, n := range stock {
				if n < 0 {
					return domain.NewValidationError("stock-"+string(g), "no puede ser negativo")
				}
			}
			var monto *decimal.Decimal
			if saldo != "" {
				d, err := parseMonto(saldo)
				if err != nil {
					return err
				}
				monto = &d
			}

			ctx := cmd.Context()
			return e.withPool(ctx, func(pool *pgxpool.Pool) error {
				invRepo := postgres.NewInventoryRepository(pool)
				now := time.Now().UTC()
				for _, g := range entity.Grades {
					item := &entity.InventoryItem{
						ID:        g,
						Nombre:    entity.DefaultNames[g],
						Precio:    decimal.NewFromInt(entity.DefaultPrices[g]),
						Stock:     stock[g],
						UpdatedAt: now,
					}
					if err := invRepo.Upsert(ctx, item); err != nil {
						return fmt.Errorf("seed %s: %w", g, err)
					}
					fmt.Fprintf(e.out, "%-3s %-9s precio=%s stock=%d\n", g, item.Nombre, item.Precio, item.Stock)
				}
				if monto == nil {
					return nil
				}
				uc := treasury.NewUseCase(postgres.NewBalanceRepository(pool), postgres.NewTransactionRepository(pool), e.log)
				if _, err := uc.InitializeBalance(ctx, dto.InitializeBalanceRequest{Monto: *monto}); err != nil {
					if errors.Is(err, domain.ErrConflict) {
						e.log.Warn().Msg("el saldo ya existía; no se modificó")
						return nil
					}
					return err
				}
				fmt.Fprintf(e.out, "saldo inicial: %s\n", monto.String())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&stockA, "stock-a", 0, "stock inicial del grado A")
	cmd.Flags().IntVar(&stockAA, "stock-aa", 0, "stock inicial del grado AA")
	cmd.Flags().IntVar(&stockB, "stock-b", 0, "stock inicial del grado B")
	cmd.Flags().StringVar(&saldo, "saldo", "", "saldo inicial en caja (solo si aún no existe)")
	return cmd
}

// ─── saldo ──────────────────────────────────────────────────────────────────

func newSaldoCmd(e *env) *cobra.Command {
	saldoCmd := &cobra.Command{
		Use:   "saldo",
		Short: "Operaciones sobre el saldo en caja",
	}
	saldoCmd.AddCommand(&cobra.Command{
		Use:   "init MONTO",
		Short: "Inicializa el saldo en caja; falla si ya existe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			monto, err := parseMonto(args[0])
			if err != nil {
				return err
			}
			return e.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				uc := treasury.NewUseCase(postgres.NewBalanceRepository(pool), postgres.NewTransactionRepository(pool), e.log)
				b, err := uc.InitializeBalance(cmd.Context(), dto.InitializeBalanceRequest{Monto: monto})
				if err != nil {
					return err
				}
				fmt.Fprintf(e.out, "saldo: %s\n", b.Monto.String())
				return nil
			})
		},
	})
	return saldoCmd
}

// ─── token ──────────────────────────────────────────────────────────────────

func newTokenCmd(e *env) *cobra.Command {
	var id jwt.Identity
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de desarrollo firmado con JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minutes <= 0 {
				minutes = e.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(e.cfg.JWT.Secret, id, e.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&id.UserID, "user", "dev", "user_id del token")
	cmd.Flags().StringVar(&id.Email, "email", "dev@huevoskikes.co", "email del token")
	cmd.Flags().StringVar(&id.Role, "role", "admin", "rol: admin | vendedor | bodeguero")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}

func parseMonto(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("monto", fmt.Sprintf("monto inválido: %q", s))
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError("monto", "no puede ser negativo")
	}
	return d, nil
}
