package credstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tulipbilling/invoicing-api/internal/config"
)

const githubAPIBaseURL = "https://api.github.com"

// GitHubSync commits the credential file to a GitHub repository through the
// contents API: fetch the current blob SHA, then PUT the new content.
type GitHubSync struct {
	http     *resty.Client
	repo     string
	filePath string
	branch   string
}

type contentsResponse struct {
	SHA string `json:"sha"`
}

type contentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch"`
}

// NewGitHubSync builds a syncer from config. Returns nil when no token is
// configured, which disables remote persistence entirely.
func NewGitHubSync(cfg *config.GitHubSyncConfig) *GitHubSync {
	if cfg.Token == "" || cfg.Repo == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(githubAPIBaseURL).
		SetAuthScheme("token").
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json").
		SetTimeout(15 * time.Second)

	return &GitHubSync{
		http:     client,
		repo:     cfg.Repo,
		filePath: cfg.FilePath,
		branch:   cfg.Branch,
	}
}

// Push commits the given file content to the configured repository path.
func (s *GitHubSync) Push(ctx context.Context, content []byte) error {
	url := fmt.Sprintf("/repos/%s/contents/%s", s.repo, s.filePath)

	// The current SHA is required to update an existing file; a 404 means
	// the file does not exist yet and the SHA is omitted.
	var current contentsResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("ref", s.branch).
		SetResult(&current).
		Get(url)
	if err != nil {
		return fmt.Errorf("fetch current config sha: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("fetch current config sha: %s", resp.Status())
	}

	payload := contentsRequest{
		Message: "Update credential config from invoicing API",
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     current.SHA,
		Branch:  s.branch,
	}

	resp, err = s.http.R().
		SetContext(ctx).
		SetBody(payload).
		Put(url)
	if err != nil {
		return fmt.Errorf("push config to github: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("push config to github: %s", resp.Status())
	}
	return nil
}
