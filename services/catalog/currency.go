package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// fallbackCurrencies keeps the converter usable when the symbols feed is
// unreachable.
var fallbackCurrencies = []string{"USD", "KES", "EUR", "GBP"}

// Converter wraps the exchangerate.host API used by the currency widget.
type Converter struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewConverter(baseURL string, timeout time.Duration, logger *zap.Logger) *Converter {
	return &Converter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Symbols returns the sorted list of supported currency codes, degrading to
// a fixed fallback list when the feed is down.
func (c *Converter) Symbols(ctx context.Context) []string {
	var payload struct {
		Symbols map[string]any `json:"symbols"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/symbols", &payload); err != nil || len(payload.Symbols) == 0 {
		c.logger.Warn("currency symbols fetch failed, using fallback list", zap.Error(err))
		return fallbackCurrencies
	}
	codes := make([]string, 0, len(payload.Symbols))
	for code := range payload.Symbols {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Convert converts amount between two currency codes.
func (c *Converter) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))

	var payload struct {
		Result *float64 `json:"result"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/convert?"+q.Encode(), &payload); err != nil {
		return 0, err
	}
	if payload.Result == nil {
		return 0, fmt.Errorf("conversion %s to %s returned no result", from, to)
	}
	return *payload.Result, nil
}

func (c *Converter) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("currency request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("currency API returned %d", resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}
