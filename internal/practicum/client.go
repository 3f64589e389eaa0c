package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	logx "homeworkbot/pkg/logx"
)

// DefaultBaseURL is the homework status endpoint.
const DefaultBaseURL = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client fetches homework review statuses. One request per call, no retries;
// re-asking the endpoint is the poll schedule's job.
type Client struct {
	cfg  ClientConfig
	http *http.Client
	log  logx.Logger
}

func NewClient(cfg ClientConfig, log logx.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// FetchStatuses asks for submissions reviewed after the given Unix timestamp.
// The body is decoded but not shape-checked; that is ValidateResponse's job.
func (c *Client) FetchStatuses(ctx context.Context, since int64) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.cfg.Token)

	q := url.Values{}
	q.Set("from_date", strconv.FormatInt(since, 10))
	req.URL.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndpointUnreachable, err)
	}
	defer resp.Body.Close()

	c.log.Debug("statuses fetched",
		logx.Int("status", resp.StatusCode),
		logx.Int64("from_date", since),
		logx.Duration("took", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrEndpointServer, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrEndpointRequest, resp.StatusCode)
	}

	var raw RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrMalformedResponse, err)
	}
	return &raw, nil
}
