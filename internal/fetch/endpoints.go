// Package fetch retrieves opportunities and their extracted document text
// from the vendor opportunity API.
package fetch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sosillc/bidgate/internal/common"
)

// ReadEndpoints loads the search id list. Blank lines and # comments are
// ignored. An empty result is an error: a run with no search ids is always
// a misconfiguration.
func ReadEndpoints(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("Endpoints file not found at %s. Create it with one search id per line.", path),
			fmt.Errorf("%w: %s", common.ErrMissingEndpoints, path),
		)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading endpoints file %s: %w", path, err)
	}

	if len(ids) == 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("Endpoints file %s contains no search ids.", path),
			common.ErrMissingEndpoints,
		)
	}
	return ids, nil
}
