package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sosillc/bidgate/internal/common"
	"github.com/sosillc/bidgate/internal/model"
)

const defaultPageSize = 100

// Client talks to the vendor opportunity API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize overrides the pagination page size.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger used for fetch warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates an opportunity API client.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, common.NewUserError(
			"Vendor API key is not set. Export SOS_API_KEY or set api_key in the config file.",
			common.ErrMissingCredentials,
		)
	}
	c := &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: defaultPageSize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// opportunityPage mirrors one page of the vendor list response.
type opportunityPage struct {
	Results []json.RawMessage `json:"results"`
	Meta    struct {
		Pagination struct {
			Pages int `json:"pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

// Search fetches every opportunity for one search id, following pagination
// until the page count reported by the first response is exhausted.
func (c *Client) Search(ctx context.Context, searchID string) ([]*model.Opportunity, error) {
	var opportunities []*model.Opportunity

	pages := 1
	for page := 1; page <= pages; page++ {
		var pageResult opportunityPage
		err := common.WithRetry(ctx, func() error {
			return c.fetchPage(ctx, searchID, page, &pageResult)
		}, common.RetryOptions{MaxAttempts: 3, InitialDelay: 2 * time.Second})
		if err != nil {
			return opportunities, fmt.Errorf("%w: search %s page %d: %v",
				common.ErrFetchFailed, searchID, page, err)
		}

		if pageResult.Meta.Pagination.Pages > 0 {
			pages = pageResult.Meta.Pagination.Pages
		}

		for _, raw := range pageResult.Results {
			var opp model.Opportunity
			if err := json.Unmarshal(raw, &opp); err != nil {
				c.logger.Warn("Skipping malformed opportunity",
					"search_id", searchID, "page", page, "error", err)
				continue
			}
			opportunities = append(opportunities, &opp)
		}
	}

	return opportunities, nil
}

func (c *Client) fetchPage(ctx context.Context, searchID string, page int, out *opportunityPage) error {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("search_id", searchID)
	query.Set("page_size", strconv.Itoa(c.pageSize))
	query.Set("page_number", strconv.Itoa(page))

	endpoint := c.baseURL + "/opportunity?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: opportunity API", common.ErrRateLimit)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &common.RetryableError{
			Err:       fmt.Errorf("opportunity API returned %d: %s", resp.StatusCode, body),
			Retryable: resp.StatusCode >= 500,
		}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
