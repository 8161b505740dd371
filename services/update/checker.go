// Package update checks GitHub releases for a newer TV build.
package update

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"

	"streamflixtv/config"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	retryAttempts     = 3
)

var (
	ErrRepositoryRequired = errors.New("update repository not configured")
	ErrNoTVRelease        = errors.New("no TV release found")

	nonVersionChars = regexp.MustCompile(`[^0-9.]`)
)

// Release is the subset of a GitHub release the checker reads.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	HTMLURL string  `json:"html_url"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Result describes the outcome of a check.
type Result struct {
	CurrentVersion string  `json:"currentVersion"`
	LatestVersion  string  `json:"latestVersion"`
	Tag            string  `json:"tag"`
	Available      bool    `json:"available"`
	Asset          *Asset  `json:"asset,omitempty"`
	Release        Release `json:"-"`
}

// Checker lists releases of one repository.
type Checker struct {
	apiBase    string
	repository string
	httpc      *http.Client
	retryDelay time.Duration
}

// NewChecker builds a checker from the update settings. A nil httpc gets a
// client with a 15s timeout.
func NewChecker(settings config.UpdateSettings, httpc *http.Client) *Checker {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	base := strings.TrimRight(strings.TrimSpace(settings.APIBaseURL), "/")
	if base == "" {
		base = defaultAPIBaseURL
	}
	return &Checker{
		apiBase:    base,
		repository: strings.Trim(strings.TrimSpace(settings.Repository), "/"),
		httpc:      httpc,
		retryDelay: 500 * time.Millisecond,
	}
}

// Check finds the newest TV release and compares it with currentVersion.
func (c *Checker) Check(ctx context.Context, currentVersion string) (Result, error) {
	result := Result{CurrentVersion: currentVersion}

	releases, err := c.Releases(ctx)
	if err != nil {
		return result, err
	}

	release, ok := SelectTVRelease(releases)
	if !ok {
		return result, ErrNoTVRelease
	}

	result.Release = release
	result.Tag = release.TagName
	result.LatestVersion = VersionFromTag(release.TagName)
	result.Available = IsNewerVersion(currentVersion, result.LatestVersion)
	if asset, ok := firstAPK(release.Assets); ok {
		result.Asset = &asset
	}
	return result, nil
}

// Releases lists the repository's releases, newest first. Transport failures
// and 5xx responses are retried; anything else fails immediately.
func (c *Checker) Releases(ctx context.Context) ([]Release, error) {
	if c.repository == "" {
		return nil, ErrRepositoryRequired
	}
	endpoint := fmt.Sprintf("%s/repos/%s/releases", c.apiBase, c.repository)

	return retry.DoWithData(
		func() ([]Release, error) {
			return c.fetchReleases(ctx, endpoint)
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[update] release listing failed (attempt %d/%d): %v", n+1, retryAttempts, err)
		}),
	)
}

func (c *Checker) fetchReleases(ctx context.Context, endpoint string) ([]Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("github releases: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, retry.Unrecoverable(fmt.Errorf("github releases: %s", resp.Status))
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("decode github releases: %w", err))
	}
	return releases, nil
}

// SelectTVRelease returns the first release tagged for TV or carrying a TV apk.
func SelectTVRelease(releases []Release) (Release, bool) {
	for _, r := range releases {
		if strings.Contains(strings.ToLower(r.TagName), "tv") {
			return r, true
		}
		for _, a := range r.Assets {
			name := strings.ToLower(a.Name)
			if strings.Contains(name, "tv") && strings.HasSuffix(name, ".apk") {
				return r, true
			}
		}
	}
	return Release{}, false
}

// VersionFromTag keeps only the digits and dots of tag: "tv-v1.2.0" is "1.2.0".
func VersionFromTag(tag string) string {
	return nonVersionChars.ReplaceAllString(tag, "")
}

// IsNewerVersion compares dot-separated numeric versions. Missing parts count
// as zero; anything unparsable is never newer.
func IsNewerVersion(current, latest string) bool {
	cur, err := parseVersion(current)
	if err != nil {
		return false
	}
	lat, err := parseVersion(latest)
	if err != nil {
		return false
	}

	for i := 0; i < max(len(cur), len(lat)); i++ {
		var a, b int
		if i < len(cur) {
			a = cur[i]
		}
		if i < len(lat) {
			b = lat[i]
		}
		if b > a {
			return true
		}
		if a > b {
			return false
		}
	}
	return false
}

func parseVersion(v string) ([]int, error) {
	parts := strings.Split(v, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", v, err)
		}
		out[i] = n
	}
	return out, nil
}

func firstAPK(assets []Asset) (Asset, bool) {
	for _, a := range assets {
		if strings.HasSuffix(strings.ToLower(a.Name), ".apk") {
			return a, true
		}
	}
	return Asset{}, false
}
