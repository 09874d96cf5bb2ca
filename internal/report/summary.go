package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lepinkainen/binder/internal/fileutil"
	"github.com/lepinkainen/binder/internal/metrics"
	"github.com/lepinkainen/binder/internal/obsidian"
	"github.com/lepinkainen/binder/internal/reconcile"
)

// WriteSummaryNote writes a markdown note with YAML frontmatter
// summarizing the collection, suitable for an Obsidian vault.
func (r *Renderer) WriteSummaryNote(table *reconcile.Table) error {
	bySet := table.BySet()

	setNames := make([]string, 0, len(bySet))
	for name := range bySet {
		setNames = append(setNames, name)
	}
	sort.Strings(setNames)

	var all metrics.Counter
	perSet := make(map[string]metrics.SetMetrics, len(bySet))
	for _, name := range setNames {
		m := metrics.ForSet(bySet[name])
		perSet[name] = m
		all.Total += m.All.Total
		all.Owned += m.All.Owned
		all.Pending += m.All.Pending
	}

	tags := obsidian.NewTagSet()
	tags.Add("pokemon")
	tags.Add("card-collection")

	fm := obsidian.NewFrontmatter()
	fm.Set("title", "Card Collection")
	fm.Set("updated", time.Now().Format("2006-01-02"))
	fm.Set("total_cards", all.Total)
	fm.Set("cards_owned", all.Owned)
	fm.Set("cards_pending", all.Pending)
	fm.Set("completion", fmt.Sprintf("%.1f%%", all.OwnedPercent()))
	fm.Set("tags", tags.GetSorted())

	var body strings.Builder
	body.WriteString("# Card Collection\n\n")
	fmt.Fprintf(&body, "%d of %d cards owned (%.1f%%), %d pending purchase.\n\n",
		all.Owned, all.Total, all.OwnedPercent(), all.Pending)

	body.WriteString("| Set | Owned | Total | Complete | Pending |\n")
	body.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
	for _, name := range setNames {
		m := perSet[name]
		fmt.Fprintf(&body, "| %s | %d | %d | %.1f%% | %d |\n",
			name, m.All.Owned, m.All.Total, m.All.OwnedPercent(), m.All.Pending)
	}

	note := &obsidian.Note{Frontmatter: fm, Body: body.String()}
	content, err := note.Build()
	if err != nil {
		return fmt.Errorf("failed to build summary note: %w", err)
	}

	path := filepath.Join(r.outputDir, "Card Collection.md")
	if _, err := fileutil.WriteFileWithOverwrite(path, content, 0644, r.overwrite); err != nil {
		return fmt.Errorf("failed to write summary note: %w", err)
	}

	return nil
}
