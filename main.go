package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lizet96/clinica-dental/config"
	"github.com/lizet96/clinica-dental/database"
	"github.com/lizet96/clinica-dental/horarios"
)

const version = "1.0.0"

func main() {
	// Cargar variables de entorno
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "clinica-dental",
		Short: "API de la consola administrativa de la clínica dental",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(horarioCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func nuevoLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "clinica-dental").Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP de la consola",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cfg, nuevoLogger(cfg))
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base de datos de bitácora y reportes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, cerrar, err := abrirMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer cerrar()

			n, err := migrator.Up(cmd.Context())
			if err != nil {
				return fmt.Errorf("migración fallida: %w", err)
			}
			fmt.Printf("%d migración(es) aplicada(s).\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de las migraciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, cerrar, err := abrirMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer cerrar()

			estados, err := migrator.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("estado de migraciones: %w", err)
			}

			fmt.Printf("%-8s %-30s %-10s %s\n", "VERSION", "NOMBRE", "ESTADO", "APLICADA")
			for _, e := range estados {
				estado, fecha := "pendiente", ""
				if e.Aplicada {
					estado = "aplicada"
					if e.AplicadaEn != nil {
						fecha = e.AplicadaEn.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-8d %-30s %-10s %s\n", e.Version, e.Nombre, estado, fecha)
			}
			return nil
		},
	})

	return cmd
}

func abrirMigrator(ctx context.Context) (*database.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.HasDatabase() {
		return nil, nil, fmt.Errorf("DATABASE_URL is required to run migrations")
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, nuevoLogger(cfg))
	if err != nil {
		return nil, nil, err
	}
	return database.NewMigrator(pool), pool.Close, nil
}

func horarioCmd() *cobra.Command {
	var inicio, fin string
	cmd := &cobra.Command{
		Use:   "horario",
		Short: "Imprime los horarios de 30 minutos entre --inicio y --fin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := horarios.ParseHora(inicio); err != nil {
				return err
			}
			if _, err := horarios.ParseHora(fin); err != nil {
				return err
			}
			horario := horarios.GenerarHorario(inicio, fin)
			if len(horario) == 0 {
				return fmt.Errorf("la hora de inicio %s debe ser anterior a la hora de fin %s", inicio, fin)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(horario, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&inicio, "inicio", "08:00", "Hora de inicio (HH:MM)")
	cmd.Flags().StringVar(&fin, "fin", "17:00", "Hora de fin (HH:MM)")
	return cmd
}
