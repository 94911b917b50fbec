package cmd

import (
	"fmt"

	"beatstore/config"
	"beatstore/core/catalog"
	"beatstore/db"
	"beatstore/logger"
	"beatstore/repository"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot folder sync into the catalog and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger.Init(logger.Config{Level: cfg.LogLevel})

		conn, err := db.Connect(cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.InitSchema(conn); err != nil {
			return err
		}

		repo := repository.NewSQLiteBeatRepository(conn)
		synchronizer := catalog.NewSynchronizer(repo, cfg.BeatsDir)
		count, err := synchronizer.Sync()
		if err != nil {
			return err
		}

		fmt.Printf("Synced %d audio files from %s\n", count, cfg.BeatsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
