package images

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	binderrors "github.com/lepinkainen/binder/internal/errors"
	"github.com/lepinkainen/binder/internal/ratelimit"
	"github.com/lepinkainen/binder/internal/reconcile"
)

const (
	defaultBaseURL = "https://www.tcgcollector.com"
	maxWidth       = 300
	jpegQuality    = 85

	// TCG Collector is a free community site, keep requests gentle
	requestsPerSecond = 2
)

// Fetcher downloads card imagery by catalog card ID and stores resized
// thumbnails on disk. Every fetch is best-effort: a failed card is logged
// and skipped, never propagated.
type Fetcher struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
	dir     string
	update  bool
}

// Result summarizes a fetch run.
type Result struct {
	Fetched int
	Skipped int
	Failed  int
}

// NewFetcher creates a Fetcher writing thumbnails into dir. When update is
// true, existing thumbnails are re-downloaded instead of skipped.
func NewFetcher(dir string, update bool) *Fetcher {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	return &Fetcher{
		client:  client,
		limiter: ratelimit.New("card-images", requestsPerSecond),
		dir:     dir,
		update:  update,
	}
}

// SetBaseURL overrides the image host, used in tests.
func (f *Fetcher) SetBaseURL(baseURL string) {
	f.client.SetBaseURL(baseURL)
}

// Path returns the thumbnail location for a catalog card ID.
func Path(dir, cardID string) string {
	return filepath.Join(dir, cardID+".jpg")
}

// Exists reports whether a thumbnail is already cached for the card ID.
func Exists(dir, cardID string) bool {
	if cardID == "" {
		return false
	}
	_, err := os.Stat(Path(dir, cardID))
	return err == nil
}

// FetchAll downloads thumbnails for every card that has a catalog card ID.
// Cards without an ID and cards whose thumbnail already exists are skipped.
// The context cancels the run between cards.
func (f *Fetcher) FetchAll(ctx context.Context, cards []reconcile.Card) Result {
	var result Result

	for _, c := range cards {
		if err := ctx.Err(); err != nil {
			slog.Info("Image fetch cancelled",
				"fetched", result.Fetched, "remaining", len(cards)-result.Fetched-result.Skipped-result.Failed)
			return result
		}

		if c.CardID == "" {
			result.Skipped++
			continue
		}
		if !f.update && Exists(f.dir, c.CardID) {
			result.Skipped++
			continue
		}

		if err := f.fetchOne(ctx, c.CardID); err != nil {
			slog.Warn("Failed to fetch card image",
				"card", c.Name, "card_id", c.CardID, "error", err)
			result.Failed++
			continue
		}
		result.Fetched++
	}

	slog.Info("Image fetch complete",
		"fetched", result.Fetched, "skipped", result.Skipped, "failed", result.Failed)
	return result
}

func (f *Fetcher) fetchOne(ctx context.Context, cardID string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/cards/%s/image", cardID))
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return binderrors.NewRateLimitError("image host rate limited the request")
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("unexpected status %d downloading image", resp.StatusCode())
	}

	img, err := imaging.Decode(bytes.NewReader(resp.Body()), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}

	return imaging.Save(img, Path(f.dir, cardID), imaging.JPEGQuality(jpegQuality))
}
