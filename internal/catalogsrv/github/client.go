// Package github reads a repository's tree and raw file content through
// the unauthenticated GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

const (
	DefaultAPIBase = "https://api.github.com"
	DefaultRawBase = "https://raw.githubusercontent.com"
)

var (
	ErrGithub       apperrors.Error = apperrors.New("error-remote-github").SetStatusCode(http.StatusInternalServerError)
	ErrRepoNotFound apperrors.Error = ErrGithub.New("error-repo-not-found").SetStatusCode(http.StatusNotFound)
)

// Client reads one repository. All calls are single-attempt, no retries.
type Client struct {
	Owner string
	Repo  string

	apiBase string
	rawBase string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) {
		g.http = c
	}
}

// WithAPIBase overrides the REST API base URL.
func WithAPIBase(base string) Option {
	return func(g *Client) {
		g.apiBase = strings.TrimSuffix(base, "/")
	}
}

// WithRawBase overrides the raw-content base URL.
func WithRawBase(base string) Option {
	return func(g *Client) {
		g.rawBase = strings.TrimSuffix(base, "/")
	}
}

func New(owner, repo string, opts ...Option) *Client {
	g := &Client{
		Owner:   owner,
		Repo:    repo,
		apiBase: DefaultAPIBase,
		rawBase: DefaultRawBase,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Repository is the subset of GitHub's repository record the catalog uses.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	HTMLURL       string `json:"html_url"`
	DefaultBranch string `json:"default_branch"`
}

type PullRequest struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	User    struct {
		Login string `json:"login"`
	} `json:"user"`
}

// TreeEntry is one entry of a recursive git tree listing. Type is "blob"
// for files and "tree" for directories.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	URL  string `json:"url"`
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// RepositoryInfo lists the owner organization's repositories and returns
// the one whose name matches exactly. ErrRepoNotFound if absent.
func (g *Client) RepositoryInfo(ctx context.Context) (*Repository, apperrors.Error) {
	var repos []Repository
	if err := g.getJSON(ctx, fmt.Sprintf("%s/orgs/%s/repos", g.apiBase, g.Owner), &repos); err != nil {
		return nil, err
	}
	for i := range repos {
		if repos[i].Name == g.Repo {
			return &repos[i], nil
		}
	}
	return nil, ErrRepoNotFound
}

// PullRequests lists the repository's pull requests, filtered to an exact
// lifecycle state when state is non-empty.
func (g *Client) PullRequests(ctx context.Context, state string) ([]PullRequest, apperrors.Error) {
	var prs []PullRequest
	if err := g.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/pulls", g.apiBase, g.Owner, g.Repo), &prs); err != nil {
		return nil, err
	}
	if state == "" {
		return prs, nil
	}
	filtered := []PullRequest{}
	for _, pr := range prs {
		if pr.State == state {
			filtered = append(filtered, pr)
		}
	}
	return filtered, nil
}

// ListTree returns the flattened, recursive tree of branch. When path is
// non-empty the listing is narrowed to entries whose path equals it
// exactly (not a prefix match); callers wanting a subtree filter the full
// listing themselves.
func (g *Client) ListTree(ctx context.Context, path, branch string) ([]TreeEntry, apperrors.Error) {
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", g.apiBase, g.Owner, g.Repo, url.PathEscape(branch))
	var resp treeResponse
	if err := g.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	tree := resp.Tree
	if path != "" {
		filtered := []TreeEntry{}
		for _, entry := range tree {
			if entry.Path == path {
				filtered = append(filtered, entry)
			}
		}
		tree = filtered
	}
	return tree, nil
}

// RawContentURL builds the raw-content URL for a file on a branch. Pure
// string construction; no request is made.
func (g *Client) RawContentURL(branch, filePath string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", g.rawBase, g.Owner, g.Repo, branch, filePath)
}

// FetchRawText fetches a file's raw content as text.
func (g *Client) FetchRawText(ctx context.Context, branch, filePath string) (string, apperrors.Error) {
	body, err := g.get(ctx, g.RawContentURL(branch, filePath))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchRawJSON fetches a file's raw content and requires it to parse as
// JSON, returning the raw document.
func (g *Client) FetchRawJSON(ctx context.Context, branch, filePath string) (json.RawMessage, apperrors.Error) {
	body, err := g.get(ctx, g.RawContentURL(branch, filePath))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, ErrGithub.MsgErr("error-remote-github", fmt.Errorf("%s: response is not valid JSON", filePath))
	}
	return json.RawMessage(body), nil
}

func (g *Client) get(ctx context.Context, u string) ([]byte, apperrors.Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, ErrGithub.Err(err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("url", u).Msg("github request failed")
		return nil, ErrGithub.Err(err)
	}
	defer resp.Body.Close()
	log.Ctx(ctx).Debug().Str("url", u).Int("status", resp.StatusCode).Msg("github response")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrGithub.MsgErr("error-remote-github", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, u))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrGithub.Err(err)
	}
	return body, nil
}

func (g *Client) getJSON(ctx context.Context, u string, v any) apperrors.Error {
	body, aerr := g.get(ctx, u)
	if aerr != nil {
		return aerr
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrGithub.MsgErr("error-remote-github", fmt.Errorf("decoding %s: %v", u, err))
	}
	return nil
}
