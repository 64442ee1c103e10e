// Package npm fetches download counts and registry quality scores for
// published packages.
package npm

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
	DefaultRegistryBase = "https://registry.npmjs.org"
	DefaultAPIBase      = "https://api.npmjs.org"
)

var ErrNPM apperrors.Error = apperrors.New("error-remote-npm").SetStatusCode(http.StatusInternalServerError)

// Download periods accepted by the registry's point API.
const (
	PeriodLastDay   = "last-day"
	PeriodLastWeek  = "last-week"
	PeriodLastMonth = "last-month"
)

// Client queries the npm registry. All calls are single-attempt.
type Client struct {
	registryBase string
	apiBase      string
	http         *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(n *Client) {
		n.http = c
	}
}

func WithRegistryBase(base string) Option {
	return func(n *Client) {
		n.registryBase = strings.TrimSuffix(base, "/")
	}
}

func WithAPIBase(base string) Option {
	return func(n *Client) {
		n.apiBase = strings.TrimSuffix(base, "/")
	}
}

func New(opts ...Option) *Client {
	n := &Client{
		registryBase: DefaultRegistryBase,
		apiBase:      DefaultAPIBase,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// DownloadPoint is the registry's download count for one package over one
// period.
type DownloadPoint struct {
	Downloads int    `json:"downloads"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Package   string `json:"package"`
}

// Score is the registry search index's composite quality metric.
type Score struct {
	Quality    float64 `json:"quality"`
	Popularity float64 `json:"popularity"`
	Final      float64 `json:"final"`
}

type searchResponse struct {
	Objects []struct {
		Package struct {
			Name string `json:"name"`
		} `json:"package"`
		Score struct {
			Final  float64 `json:"final"`
			Detail struct {
				Quality    float64 `json:"quality"`
				Popularity float64 `json:"popularity"`
			} `json:"detail"`
		} `json:"score"`
	} `json:"objects"`
}

// Downloads returns the package's download count for the given period. A
// package the registry has no data for yields a zero-valued record.
func (n *Client) Downloads(ctx context.Context, pkg, period string) (*DownloadPoint, apperrors.Error) {
	if period == "" {
		period = PeriodLastMonth
	}
	u := fmt.Sprintf("%s/downloads/point/%s/%s", n.apiBase, period, url.PathEscape(pkg))
	var point DownloadPoint
	found, err := n.getJSON(ctx, u, &point)
	if err != nil {
		return nil, err
	}
	if !found {
		return &DownloadPoint{Package: pkg}, nil
	}
	return &point, nil
}

// RegistryScore searches the registry for the exact package name among the
// first page of search results and returns its score. This is an
// approximation, not a guaranteed lookup: a package outside the
// size-limited result set yields an empty Score.
func (n *Client) RegistryScore(ctx context.Context, pkg string) (*Score, apperrors.Error) {
	u := fmt.Sprintf("%s/-/v1/search?text=%s&size=10", n.registryBase, url.QueryEscape(pkg))
	var resp searchResponse
	if _, err := n.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	for _, obj := range resp.Objects {
		if obj.Package.Name == pkg {
			return &Score{
				Quality:    obj.Score.Detail.Quality,
				Popularity: obj.Score.Detail.Popularity,
				Final:      obj.Score.Final,
			}, nil
		}
	}
	return &Score{}, nil
}

// PackageInfo returns the package's raw registry document.
func (n *Client) PackageInfo(ctx context.Context, pkg string) (json.RawMessage, apperrors.Error) {
	u := fmt.Sprintf("%s/%s", n.registryBase, url.PathEscape(pkg))
	var doc json.RawMessage
	found, err := n.getJSON(ctx, u, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNPM.New("error-package-not-found").SetStatusCode(http.StatusNotFound)
	}
	return doc, nil
}

// getJSON performs a GET and decodes the JSON body. A 404 reports
// found=false with no error; any other non-2xx status is an error.
func (n *Client) getJSON(ctx context.Context, u string, v any) (found bool, aerr apperrors.Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, ErrNPM.Err(err)
	}
	resp, err := n.http.Do(req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("url", u).Msg("npm request failed")
		return false, ErrNPM.Err(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, ErrNPM.MsgErr("error-remote-npm", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, u))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, ErrNPM.Err(err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, ErrNPM.MsgErr("error-remote-npm", fmt.Errorf("decoding %s: %v", u, err))
	}
	return true, nil
}
