package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/juridica-backend/internal/data/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		svc, err := db.NewService(log, cfg.DB)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := db.AutoMigrateAll(svc.DB()); err != nil {
			return err
		}
		log.Info("migrations applied", "driver", cfg.DB.Driver)
		return nil
	},
}
