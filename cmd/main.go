package main

import (
	"os"

	"bidboard/internal/app"
	"bidboard/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:          "bidboard",
		Short:        "Job bidding marketplace web frontend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")

	root.AddCommand(serveCmd(), devAPICmd(), migrateCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the marketplace web frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewApp()
			if err != nil {
				return err
			}
			a.Run()
			return nil
		},
	}
}

func devAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devapi",
		Short: "Serve the PostgreSQL backed marketplace API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewDevAPI()
			if err != nil {
				return err
			}
			a.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the development API schema",
	}

	run := func(up bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if err := app.Migrate(cfg, up); err != nil {
				return err
			}
			log.Info().Bool("up", up).Msg("Migration finished")
			return nil
		}
	}

	migrate.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all migrations", Args: cobra.NoArgs, RunE: run(true)},
		&cobra.Command{Use: "down", Short: "Revert all migrations", Args: cobra.NoArgs, RunE: run(false)},
	)
	return migrate
}
