package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shoredock-backend/internal/application/projects"
	"shoredock-backend/internal/config"
	"shoredock-backend/internal/infrastructure/database"
	"shoredock-backend/internal/interfaces/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shoredock",
	Short: "Waterfront permit wizard backend",
	Long:  `Backend for the shoreline improvement permit wizard: eligibility evaluation, stage-gated workflow, and version history over a local database.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app, err := router.CreateApp(cfg)
		if err != nil {
			return err
		}

		if app.Rdb != nil {
			if err := app.Rdb.Ping(context.Background()).Err(); err != nil {
				log.Warn().Err(err).Msg("Redis unreachable, elevation caching disabled")
			} else {
				log.Info().Msg("Redis connected")
			}
		}

		// Flush pending autosaves before the process exits.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-stop
			log.Info().Msg("Shutting down")
			app.Autosave.Flush()
			_ = app.Fiber.Shutdown()
		}()

		log.Info().Str("port", cfg.Port).Str("data_dir", cfg.DataDir).Msg("Server running")
		return app.Fiber.Listen(":" + cfg.Port)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and a first-run project",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return err
		}
		db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		svc := &projects.Service{DB: db, BlobDir: cfg.BlobDir()}
		project, err := svc.EnsureFirstRun(context.Background())
		if err != nil {
			return err
		}
		log.Info().Str("project_id", project.ProjectID.String()).Str("name", project.Name).Msg("Seed complete")
		return nil
	},
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
