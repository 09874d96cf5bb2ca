package snapshot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/cardmarket"
	binderrors "github.com/lepinkainen/binder/internal/errors"
	"github.com/lepinkainen/binder/internal/tcgcollector"
)

const (
	catalogGlob     = "*TCG Collector*.html"
	marketplaceGlob = "*Cardmarket*.html"
)

// Extract reads all source HTML files under dataDir and builds a fresh
// snapshot. Missing catalog files are fatal; missing marketplace files
// are the expected state once all pending orders have arrived.
func Extract(dataDir string) (*Snapshot, error) {
	if _, err := os.Stat(dataDir); err != nil {
		return nil, fmt.Errorf("data directory not usable: %w", err)
	}

	catalogFiles, err := filepath.Glob(filepath.Join(dataDir, catalogGlob))
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog files: %w", err)
	}
	if len(catalogFiles) == 0 {
		return nil, binderrors.NewMissingCatalogError(dataDir)
	}

	marketFiles, err := filepath.Glob(filepath.Join(dataDir, marketplaceGlob))
	if err != nil {
		return nil, fmt.Errorf("failed to scan marketplace files: %w", err)
	}
	if len(marketFiles) == 0 {
		slog.Info("No marketplace files found, proceeding with catalog only", "dir", dataDir)
	}

	slog.Info("Extracting card data", "catalog_files", len(catalogFiles), "marketplace_files", len(marketFiles))

	var catalogCards []card.Card
	for _, file := range catalogFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", file, err)
		}
		cards := tcgcollector.ExtractCards(string(content))
		slog.Info("Extracted catalog cards", "file", filepath.Base(file), "cards", len(cards))
		catalogCards = append(catalogCards, cards...)
	}

	var marketCards []card.Card
	for _, file := range marketFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read marketplace file %s: %w", file, err)
		}
		cards := cardmarket.ExtractCards(string(content))
		slog.Info("Extracted marketplace cards", "file", filepath.Base(file), "cards", len(cards))
		marketCards = append(marketCards, cards...)
	}

	setMapping := card.BuildSetMapping(catalogCards)
	for i := range marketCards {
		setMapping.Resolve(&marketCards[i])
	}

	sourceFiles := make(map[string]SourceFileInfo)
	for _, file := range append(append([]string{}, catalogFiles...), marketFiles...) {
		info, err := os.Stat(file)
		if err != nil {
			slog.Warn("Failed to stat source file", "file", file, "error", err)
			continue
		}
		sourceFiles[file] = SourceFileInfo{
			Size:  info.Size(),
			Mtime: float64(info.ModTime().UnixNano()) / float64(time.Second),
		}
	}

	return &Snapshot{
		ExtractionTimestamp: time.Now().Format(time.RFC3339),
		TCGCards:            catalogCards,
		CardmarketCards:     marketCards,
		SetMapping:          setMapping,
		SourceFiles:         sourceFiles,
		Stats: Stats{
			TCGFilesCount:        len(catalogFiles),
			CardmarketFilesCount: len(marketFiles),
			TotalTCGCards:        len(catalogCards),
			TotalCardmarketCards: len(marketCards),
		},
	}, nil
}
