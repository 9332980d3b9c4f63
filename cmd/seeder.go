package cmd

import (
	"context"
	"log"
	"os"

	"github.com/codecraft/employee-directory/internal/seeder"
	"github.com/codecraft/employee-directory/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with roles, demo users and employees",
	Long: `One-time bootstrap: ensures the Admin and User roles exist, creates the
three demo accounts when no users are present, and imports employees from the
random-person API until the configured target count is reached. Safe to re-run;
not safe to run concurrently with itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(os.Getenv("APP_ENV"))
		lg := logger.LoggerWrapper()

		_, gormDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		fetcher := seeder.NewRandomUserClient(cfg.Seeder.SourceURL, cfg.Seeder.HTTPTimeout)
		svc := seeder.NewService(gormDB, fetcher, cfg.Seeder, lg)

		if err := svc.Run(context.Background()); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}

		lg.Info("database seeding completed")
	},
}
