package main

import (
	"fmt"
	"log"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the user_states table for the mysql state store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			if cfg.Persistence.Driver != util.PersistenceMySQL {
				return fmt.Errorf("migrate requires persistence.driver=%s, got %q", util.PersistenceMySQL, cfg.Persistence.Driver)
			}

			db, err := database.InitDB(&cfg.Database, false)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			if err := repository.NewStateRepository(db).Migrate(); err != nil {
				return err
			}

			log.Println("migrations complete")
			return nil
		},
	}
}
