// Package report renders the static HTML pages for the reconciled
// collection: the set overview, one detail page per set, and the legacy
// single-page report.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/fileutil"
	"github.com/lepinkainen/binder/internal/images"
	"github.com/lepinkainen/binder/internal/metrics"
	"github.com/lepinkainen/binder/internal/reconcile"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.New("report").
	Funcs(template.FuncMap{
		"percent": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64)
		},
	}).
	ParseFS(templateFS, "templates/*.tmpl"))

const imagesSubdir = "images"

// Renderer writes report pages into an output directory. Thumbnails are
// expected under its images/ subdirectory.
type Renderer struct {
	outputDir string
	overwrite bool
}

// NewRenderer creates a Renderer writing into outputDir. Existing files
// are overwritten by default.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir, overwrite: true}
}

// SetOverwrite controls whether existing output files are replaced.
func (r *Renderer) SetOverwrite(overwrite bool) {
	r.overwrite = overwrite
}

// ImagesDir returns the thumbnail directory for this renderer's output.
func (r *Renderer) ImagesDir() string {
	return filepath.Join(r.outputDir, imagesSubdir)
}

// setSummary is one set's card on the overview page.
type setSummary struct {
	Name     string
	Code     string
	Filename string
	Counter  metrics.Counter

	// Progress bar geometry: Progress is the combined owned+pending
	// width, the shares split that width between the two segments.
	Progress     float64
	OwnedShare   float64
	PendingShare float64
}

type overviewData struct {
	All  metrics.Counter
	Sets []setSummary
}

// cardRow is one table row on a set detail page.
type cardRow struct {
	HasImage   bool
	ImagePath  string
	Number     string
	TotalCount string
	Name       string
	Variant    string
	Have       string
	Status     string
	RowClass   string
}

type setPageData struct {
	SetName string
	SetCode string
	Metrics metrics.SetMetrics

	Progress     float64
	OwnedShare   float64
	PendingShare float64

	Rows []cardRow
}

// RenderAll writes the overview, legacy page and set detail pages.
// The overview and legacy pages are always rewritten; set pages follow
// the changed-set selection unless regenerateAll is set. A selected-out
// set page that is missing on disk is still generated.
func (r *Renderer) RenderAll(table *reconcile.Table, changedSets map[string]bool, regenerateAll bool) error {
	if err := r.RenderOverview(table); err != nil {
		return err
	}
	if err := r.RenderLegacy(table); err != nil {
		return err
	}

	bySet := table.BySet()
	names := make([]string, 0, len(bySet))
	for name := range bySet {
		names = append(names, name)
	}
	sort.Strings(names)

	generated, skipped := 0, 0
	for _, name := range names {
		path := r.setPagePath(name)
		if !regenerateAll && !changedSets[name] && fileutil.FileExists(path) {
			skipped++
			continue
		}
		if err := r.RenderSetPage(name, bySet[name]); err != nil {
			return err
		}
		generated++
	}

	slog.Info("Set pages rendered", "generated", generated, "skipped", skipped)
	return nil
}

// RenderOverview writes index.html with per-set completion cards sorted
// by combined owned+pending progress, best first.
func (r *Renderer) RenderOverview(table *reconcile.Table) error {
	var all metrics.Counter
	bySet := table.BySet()

	sets := make([]setSummary, 0, len(bySet))
	for name, cards := range bySet {
		m := metrics.ForSet(cards)
		all.Total += m.All.Total
		all.Owned += m.All.Owned
		all.Pending += m.All.Pending

		code := "UNK"
		if len(cards) > 0 && cards[0].SetCode != "" {
			code = cards[0].SetCode
		}

		progress, ownedShare, pendingShare := progressBar(m.All)
		sets = append(sets, setSummary{
			Name:         name,
			Code:         code,
			Filename:     fileutil.SetPageFilename(name) + ".html",
			Counter:      m.All,
			Progress:     progress,
			OwnedShare:   ownedShare,
			PendingShare: pendingShare,
		})
	}

	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Progress != sets[j].Progress {
			return sets[i].Progress > sets[j].Progress
		}
		return sets[i].Name < sets[j].Name
	})

	return r.writePage("index.html", "overview.html.tmpl", overviewData{All: all, Sets: sets})
}

// RenderSetPage writes the detail page for one set. Cards arrive in
// identity-key order, which is already number-then-variant.
func (r *Renderer) RenderSetPage(setName string, cards []reconcile.Card) error {
	m := metrics.ForSet(cards)

	code := "UNK"
	if len(cards) > 0 && cards[0].SetCode != "" {
		code = cards[0].SetCode
	}

	rows := make([]cardRow, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, r.cardRow(c))
	}

	progress, ownedShare, pendingShare := progressBar(m.All)
	data := setPageData{
		SetName:      setName,
		SetCode:      code,
		Metrics:      m,
		Progress:     progress,
		OwnedShare:   ownedShare,
		PendingShare: pendingShare,
		Rows:         rows,
	}

	return r.writePage(fileutil.SetPageFilename(setName)+".html", "set_page.html.tmpl", data)
}

// RenderLegacy writes the single-page compatibility report.
func (r *Renderer) RenderLegacy(table *reconcile.Table) error {
	var all metrics.Counter
	for _, c := range table.Cards() {
		all.Total++
		if c.HasCard {
			all.Owned++
		}
		if c.CardmarketPending {
			all.Pending++
		}
	}
	return r.writePage("card_collection_report.html", "legacy.html.tmpl", all)
}

func (r *Renderer) cardRow(c reconcile.Card) cardRow {
	row := cardRow{
		Number:     c.Number,
		TotalCount: c.TotalCount,
		Name:       c.Name,
		Variant:    string(c.Variant),
		Have:       "✗",
	}
	if row.Number == "" {
		row.Number = "XXX"
	}
	if row.Name == "" {
		row.Name = "Unknown"
	}
	if row.Variant == "" {
		row.Variant = string(card.VariantNormal)
	}
	if c.HasCard {
		row.Have = "✓"
	}

	row.Status = string(c.Status())
	switch c.Status() {
	case card.StatusHave, card.StatusDuplicate:
		row.RowClass = "has-card"
	case card.StatusPending:
		row.RowClass = "pending"
	default:
		row.RowClass = "missing-card"
	}

	if c.CardID != "" && images.Exists(r.ImagesDir(), c.CardID) {
		row.HasImage = true
		row.ImagePath = imagesSubdir + "/" + c.CardID + ".jpg"
	}

	return row
}

func (r *Renderer) setPagePath(setName string) string {
	return filepath.Join(r.outputDir, fileutil.SetPageFilename(setName)+".html")
}

func (r *Renderer) writePage(filename, templateName string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", filename, err)
	}

	path := filepath.Join(r.outputDir, filename)
	if _, err := fileutil.WriteFileWithOverwrite(path, buf.Bytes(), 0644, r.overwrite); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	slog.Debug("Report page written", "path", path)
	return nil
}

// progressBar converts a counter into the combined bar width plus the
// owned/pending split inside that width.
func progressBar(c metrics.Counter) (progress, ownedShare, pendingShare float64) {
	owned := c.OwnedPercent()
	pending := c.PendingPercent()
	progress = owned + pending
	if progress > 0 {
		ownedShare = owned / progress * 100
		pendingShare = pending / progress * 100
	}
	return progress, ownedShare, pendingShare
}
