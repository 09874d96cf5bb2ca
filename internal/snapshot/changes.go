package snapshot

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// NeedsExtraction reports whether the snapshot at snapshotPath is
// missing or stale compared to the HTML files under dataDir.
func NeedsExtraction(snapshotPath, dataDir string) bool {
	info, err := os.Stat(snapshotPath)
	if err != nil {
		return true
	}
	snapshotMtime := info.ModTime()

	htmlFiles, err := filepath.Glob(filepath.Join(dataDir, "*.html"))
	if err != nil || len(htmlFiles) == 0 {
		return false
	}

	for _, file := range htmlFiles {
		fi, err := os.Stat(file)
		if err != nil {
			continue
		}
		if fi.ModTime().After(snapshotMtime) {
			slog.Info("Source file newer than snapshot", "file", filepath.Base(file))
			return true
		}
	}

	return false
}

// ChangedSets determines which sets need their report pages rewritten
// based on source file changes since extraction. regenerateAll is true
// when HTML files exist that the snapshot never saw. The reconciled
// table itself is always rebuilt from scratch; this only scopes which
// pages are rewritten.
func (s *Snapshot) ChangedSets(dataDir string) (changed map[string]bool, regenerateAll bool) {
	changed = make(map[string]bool)

	for path, stored := range s.SourceFiles {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		currentMtime := float64(info.ModTime().UnixNano()) / float64(time.Second)
		if currentMtime <= stored.Mtime {
			continue
		}

		fileName := filepath.Base(path)
		slog.Info("File changed since extraction", "file", fileName)

		// Catalog filenames carry the set name:
		// "<Set Name> card list (International TCG) – TCG Collector.html"
		if strings.Contains(fileName, "TCG Collector") {
			if setName, _, found := strings.Cut(fileName, " card list"); found {
				changed[strings.TrimSpace(setName)] = true
			}
		}
	}

	htmlFiles, err := filepath.Glob(filepath.Join(dataDir, "*.html"))
	if err == nil {
		for _, file := range htmlFiles {
			if _, tracked := s.SourceFiles[file]; !tracked {
				slog.Info("Found untracked HTML file, regenerating all sets", "file", filepath.Base(file))
				return nil, true
			}
		}
	}

	return changed, false
}
