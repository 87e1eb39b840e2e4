package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"sitegen_server/config"
	"sitegen_server/internal/export"
	"sitegen_server/internal/store"
)

var (
	exportProject string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a stored project's files to a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportProject == "" {
			return errors.New("--project is required")
		}
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("cannot load config: %w", err)
		}

		db, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		ctx := context.Background()
		project, err := db.GetProject(ctx, exportProject)
		if err != nil {
			return err
		}
		files, err := db.ListFiles(ctx, project.ID)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = project.Name
		}
		n, err := export.WriteProject(out, files)
		if err != nil {
			return err
		}
		log.Printf("Exported %d files of project %s (%s) to %s", n, project.ID, project.Name, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportProject, "project", "", "project id to export")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (defaults to the project name)")
	rootCmd.AddCommand(exportCmd)
}
