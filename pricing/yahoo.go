package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// userAgent is sent because the chart endpoint rejects Go's default agent.
const userAgent = "Mozilla/5.0 (compatible; condor/1.0)"

// Yahoo reads the last close from the Yahoo Finance chart API.
type Yahoo struct {
	baseURL    string
	interval   string
	rng        string
	httpClient *http.Client
}

// NewYahoo creates a chart client. interval and rng are the chart API's
// "interval" and "range" parameters, e.g. "1m" and "1d".
func NewYahoo(baseURL, interval, rng string, timeout time.Duration) *Yahoo {
	return &Yahoo{
		baseURL:  baseURL,
		interval: interval,
		rng:      rng,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chartMeta struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

type chartQuote struct {
	Close []*float64 `json:"close"`
}

type chartResult struct {
	Meta       chartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

// Latest returns the most recent non-null close in the requested range.
// When the series has no closes it falls back to the regular market price
// from the response metadata.
func (y *Yahoo) Latest(ctx context.Context, symbol string) (Quote, error) {
	if symbol == "" {
		return Quote{}, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("interval", y.interval)
	params.Set("range", y.rng)
	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Quote{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Quote{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if e := cr.Chart.Error; e != nil {
		return Quote{}, fmt.Errorf("%w: %s: %s", ErrUnavailable, e.Code, e.Description)
	}
	if len(cr.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("%w: empty result for %s", ErrUnavailable, symbol)
	}

	return lastClose(symbol, cr.Chart.Result[0])
}

func lastClose(symbol string, r chartResult) (Quote, error) {
	if len(r.Indicators.Quote) > 0 {
		closes := r.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] == nil || !usable(*closes[i]) {
				continue
			}
			q := Quote{Symbol: symbol, Price: *closes[i]}
			if i < len(r.Timestamp) {
				q.Time = time.Unix(r.Timestamp[i], 0).UTC()
			}
			return q, nil
		}
	}

	if usable(r.Meta.RegularMarketPrice) {
		q := Quote{Symbol: symbol, Price: r.Meta.RegularMarketPrice}
		if r.Meta.RegularMarketTime > 0 {
			q.Time = time.Unix(r.Meta.RegularMarketTime, 0).UTC()
		}
		return q, nil
	}

	return Quote{}, fmt.Errorf("%w: no closes for %s", ErrUnavailable, symbol)
}
