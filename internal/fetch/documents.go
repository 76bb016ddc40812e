package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sosillc/bidgate/internal/common"
	"github.com/sosillc/bidgate/internal/model"
)

// DefaultDocumentWorkers bounds the parallel document fetch pool.
const DefaultDocumentWorkers = 2

// documentManifest mirrors the manifest returned by document_path.
type documentManifest struct {
	Results []struct {
		FileName    string `json:"file_name"`
		TextExtract string `json:"text_extract"`
		Text        string `json:"text"`
	} `json:"results"`
}

// FetchDocuments populates Text on every opportunity that carries a document
// manifest URL. Fetching runs on a bounded worker pool; if the parallel pass
// fails for any opportunity, the whole search id is retried sequentially so
// results never mix the two paths. Document failures are not fatal: an
// opportunity without text is scored on its metadata and summary alone.
func (c *Client) FetchDocuments(ctx context.Context, opportunities []*model.Opportunity, workers int) {
	if workers <= 0 {
		workers = DefaultDocumentWorkers
	}

	texts := make([]string, len(opportunities))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, opp := range opportunities {
		if opp.DocumentPath == "" {
			continue
		}
		group.Go(func() error {
			text, err := c.fetchDocumentText(groupCtx, opp.DocumentPath)
			if err != nil {
				return fmt.Errorf("%s: %w", opp.ID(), err)
			}
			texts[i] = text
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		c.logger.Warn("Parallel document fetch failed, retrying sequentially", "error", err)
		c.fetchDocumentsSequential(ctx, opportunities)
		return
	}

	for i, opp := range opportunities {
		if texts[i] != "" {
			opp.Text = texts[i]
		}
	}
}

func (c *Client) fetchDocumentsSequential(ctx context.Context, opportunities []*model.Opportunity) {
	for _, opp := range opportunities {
		if opp.DocumentPath == "" {
			continue
		}
		text, err := c.fetchDocumentText(ctx, opp.DocumentPath)
		if err != nil {
			c.logger.Debug("Document fetch failed, scoring on metadata only",
				"solicitation_id", opp.ID(), "error", err)
			continue
		}
		if text != "" {
			opp.Text = text
		}
	}
}

// fetchDocumentText downloads one manifest and joins its text extracts.
func (c *Client) fetchDocumentText(ctx context.Context, manifestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDocumentFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDocumentFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: manifest returned %d", common.ErrDocumentFetch, resp.StatusCode)
	}

	var manifest documentManifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDocumentFetch, err)
	}

	var parts []string
	for _, doc := range manifest.Results {
		extract := doc.TextExtract
		if extract == "" {
			extract = doc.Text
		}
		extract = strings.TrimSpace(extract)
		if extract == "" {
			continue
		}
		if doc.FileName != "" {
			parts = append(parts, "=== "+doc.FileName+" ===\n"+extract)
		} else {
			parts = append(parts, extract)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}
