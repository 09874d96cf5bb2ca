package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/lepinkainen/binder/internal/cardmarket"
	"github.com/lepinkainen/binder/internal/config"
	"github.com/lepinkainen/binder/internal/datastore"
	"github.com/lepinkainen/binder/internal/images"
	"github.com/lepinkainen/binder/internal/metrics"
	"github.com/lepinkainen/binder/internal/reconcile"
	"github.com/lepinkainen/binder/internal/report"
	"github.com/lepinkainen/binder/internal/snapshot"
	"github.com/spf13/viper"
)

// runExtraction re-extracts card data from the source HTML files and
// saves the snapshot, nothing more.
func runExtraction() error {
	snap, err := snapshot.Extract(config.DataDir)
	if err != nil {
		return err
	}
	if err := snap.Save(config.SnapshotFile); err != nil {
		return err
	}

	slog.Info("Extraction complete",
		"catalog_cards", snap.Stats.TotalTCGCards,
		"marketplace_cards", snap.Stats.TotalCardmarketCards,
		"snapshot", config.SnapshotFile)
	return nil
}

// runPipeline is the shared generate/report flow: obtain a snapshot
// (extracting when needed), reconcile, and render everything.
func runPipeline(forceExtract, skipExtraction, forceAllPages bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	extracted := false
	var snap *snapshot.Snapshot
	var err error

	if !skipExtraction && (forceExtract || snapshot.NeedsExtraction(config.SnapshotFile, config.DataDir)) {
		slog.Info("Extracting card data", "datadir", config.DataDir)
		snap, err = snapshot.Extract(config.DataDir)
		if err != nil {
			return err
		}
		if err := snap.Save(config.SnapshotFile); err != nil {
			return err
		}
		extracted = true
	} else {
		snap, err = snapshot.Load(config.SnapshotFile)
		if err != nil {
			return fmt.Errorf("failed to load snapshot (run extract first): %w", err)
		}
		slog.Info("Using existing snapshot", "extracted", snap.ExtractionTimestamp)
	}

	table, err := reconcile.Merge(snap.TCGCards, snap.CardmarketCards)
	if err != nil {
		return err
	}
	slog.Info("Reconciliation complete", "cards", table.Len(), "collisions", table.Collisions())

	renderer := report.NewRenderer(config.OutputDir)
	renderer.SetOverwrite(config.OverwriteFiles)

	if config.FetchImages {
		fetcher := images.NewFetcher(renderer.ImagesDir(), config.UpdateImages)
		fetcher.FetchAll(ctx, table.Cards())
	}

	changed, regenerateAll := snap.ChangedSets(config.DataDir)
	if extracted || forceAllPages {
		regenerateAll = true
	}

	if err := renderer.RenderAll(table, changed, regenerateAll); err != nil {
		return err
	}
	if err := renderer.WriteWantLists(ctx, table, cardmarket.NewConverter("")); err != nil {
		return err
	}
	if err := renderer.WriteSummaryNote(table); err != nil {
		return err
	}

	if viper.GetBool("database.enabled") {
		dbFile := viper.GetString("database.dbfile")
		if err := datastore.ExportCards(dbFile, table); err != nil {
			return err
		}
		slog.Info("Card table exported", "dbfile", dbFile)
	}

	slog.Info("Report generation complete", "outputdir", config.OutputDir)
	return nil
}

// showInfo prints snapshot and completion statistics.
func showInfo() error {
	snap, err := snapshot.Load(config.SnapshotFile)
	if err != nil {
		return fmt.Errorf("failed to load snapshot (run extract first): %w", err)
	}

	fmt.Printf("Snapshot: %s\n", config.SnapshotFile)
	fmt.Printf("Extracted: %s\n", snap.ExtractionTimestamp)
	fmt.Printf("Source files: %d catalog, %d marketplace\n",
		snap.Stats.TCGFilesCount, snap.Stats.CardmarketFilesCount)
	fmt.Printf("Cards: %d catalog, %d marketplace\n",
		snap.Stats.TotalTCGCards, snap.Stats.TotalCardmarketCards)

	table, err := reconcile.Merge(snap.TCGCards, snap.CardmarketCards)
	if err != nil {
		return err
	}

	fmt.Printf("Unified cards: %d\n\n", table.Len())

	bySet := table.BySet()
	names := make([]string, 0, len(bySet))
	for name := range bySet {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics.ForSet(bySet[name])
		fmt.Printf("%-40s %3d/%3d owned (%.1f%%), %d pending\n",
			name, m.All.Owned, m.All.Total, m.All.OwnedPercent(), m.All.Pending)
	}

	return nil
}
