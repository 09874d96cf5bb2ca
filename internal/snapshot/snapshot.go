// Package snapshot owns the extracted-data snapshot: the JSON hand-off
// between the extraction stage and report generation. The reconciled
// table is always re-derived from this snapshot, never patched.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/fileutil"
)

// SourceFileInfo records the size and modification time of an input
// file at extraction time, for change detection.
type SourceFileInfo struct {
	Size  int64   `json:"size"`
	Mtime float64 `json:"mtime"`
}

// Stats holds quick-inspection counts for the snapshot.
type Stats struct {
	TCGFilesCount        int `json:"tcg_files_count"`
	CardmarketFilesCount int `json:"cardmarket_files_count"`
	TotalTCGCards        int `json:"total_tcg_cards"`
	TotalCardmarketCards int `json:"total_cardmarket_cards"`
}

// Snapshot is the persisted intermediate state produced by extraction
// and consumed by reporting.
type Snapshot struct {
	ExtractionTimestamp string                    `json:"extraction_timestamp"`
	TCGCards            []card.Card               `json:"tcg_cards"`
	CardmarketCards     []card.Card               `json:"cardmarket_cards"`
	SetMapping          card.SetMapping           `json:"set_mapping"`
	SourceFiles         map[string]SourceFileInfo `json:"source_files"`
	Stats               Stats                     `json:"stats"`
}

// Save writes the snapshot to disk, replacing any previous one.
func (s *Snapshot) Save(path string) error {
	if _, err := fileutil.WriteJSONFile(s, path, true); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot from disk.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return &s, nil
}
