package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashwinyue/ai-tools-hub/internal/database"
	"github.com/ashwinyue/ai-tools-hub/internal/seed"
)

var seedFile string

// migrateCmd 执行 AutoMigrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate()
	},
}

// seedCmd 写入种子数据
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and load the seed dataset (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := seed.Default()
		if seedFile != "" {
			ds, err = seed.LoadFile(seedFile)
		}
		if err != nil {
			return err
		}

		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return err
		}
		return seed.Seed(cmd.Context(), db.DB, ds, bcrypt.DefaultCost)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed JSON file (comments and trailing commas are tolerated)")
}
