package cardmarket

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	binderrors "github.com/lepinkainen/binder/internal/errors"
)

// DefaultConverterURL is the pokedata.ovh decklist-to-Cardmarket
// converter endpoint.
const DefaultConverterURL = "https://www.pokedata.ovh/misc/cardmarket"

var textareaRe = regexp.MustCompile(`(?s)<textarea[^>]*id="cardmarket"[^>]*>(.*?)</textarea>`)

// Converter converts decklist-format want lists into Cardmarket's
// import format via the pokedata.ovh web converter. The conversion is
// best-effort: callers fall back to the unconverted list on any error.
type Converter struct {
	client *resty.Client
}

// NewConverter creates a Converter against the given base URL.
// An empty baseURL uses the public endpoint.
func NewConverter(baseURL string) *Converter {
	if baseURL == "" {
		baseURL = DefaultConverterURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:142.0) Gecko/20100101 Firefox/142.0").
		SetHeader("Referer", DefaultConverterURL).
		SetHeader("Origin", "https://www.pokedata.ovh")
	return &Converter{client: client}
}

// Convert posts a decklist and returns the converted Cardmarket text.
func (c *Converter) Convert(ctx context.Context, decklist string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"decklist": decklist}).
		Post("")
	if err != nil {
		return "", fmt.Errorf("converter request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return "", binderrors.NewRateLimitError("converter rate limited the request")
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("converter returned status %d", resp.StatusCode())
	}

	m := textareaRe.FindStringSubmatch(resp.String())
	if m == nil {
		return "", fmt.Errorf("converted text not found in response")
	}

	return strings.TrimSpace(m[1]), nil
}
