package main

import (
	"fmt"
	"os"

	"log/slog"

	"github.com/jekabolt/shopdesk-reports/app"
	"github.com/jekabolt/shopdesk-reports/internal/snapshot"
	"github.com/jekabolt/shopdesk-reports/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <export.json>",
	Short: "Load a console export into MySQL",
	Args:  cobra.ExactArgs(1),
	RunE:  importExport,
}

func importExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	snap, err := snapshot.Decode(f)
	if err != nil {
		return err
	}

	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}

	db, err := store.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("couldn't connect to mysql: %w", err)
	}
	defer db.Close()
	db.SetLocation(engine.Location())

	docs := db.Documents()
	n, err := docs.ImportSnapshot(ctx, snap)
	if err != nil {
		return err
	}
	counts, err := docs.CountDocuments(ctx)
	if err != nil {
		return err
	}

	attrs := []any{slog.Int("written", n), slog.String("file", args[0])}
	for name, c := range counts {
		attrs = append(attrs, slog.Int(name, c))
	}
	logger.InfoContext(ctx, "export imported", attrs...)
	return nil
}
