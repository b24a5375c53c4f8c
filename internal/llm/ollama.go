// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/wordsmith/internal/httputil"
)

// ModelInfo describes one model installed on an Ollama host.
type ModelInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// tagsResponse is the body of Ollama's GET /api/tags.
type tagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ListModels queries an Ollama host for its installed models. The base
// URL may carry the OpenAI-compatible /v1 suffix; it is stripped because
// the tags endpoint lives on the native API root. A nil client uses
// http.DefaultClient.
func ListModels(ctx context.Context, client *http.Client, baseURL string) ([]ModelInfo, error) {
	root := strings.TrimRight(baseURL, "/")
	root = strings.TrimSuffix(root, "/v1")
	url := root + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model host returned %d for %s", resp.StatusCode, url)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}
	return tags.Models, nil
}
