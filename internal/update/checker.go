// Package update checks GitHub releases for a newer version of the tool.
// It only reports; downloading and installing releases is left to the user.
package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"

	gh "github.com/google/go-github/v68/github"
)

// ErrNoRelease is returned when the repository has no published release.
var ErrNoRelease = errors.New("no published release")

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"downloadUrl"`
	Size        int    `json:"size"`
}

// Release is the latest published release.
type Release struct {
	Tag         string    `json:"tag"`
	Name        string    `json:"name,omitempty"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Assets      []Asset   `json:"assets,omitempty"`
}

// Result is the outcome of comparing the running version with the latest release.
type Result struct {
	Current     string  `json:"current"`
	Latest      Release `json:"latest"`
	NeedsUpdate bool    `json:"needsUpdate"`
}

// Checker queries one repository's releases.
type Checker struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewChecker creates a Checker for owner/repo.
func NewChecker(client *gh.Client, owner, repo string) *Checker {
	return &Checker{client: client, owner: owner, repo: repo}
}

// Latest returns the latest published release.
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	rel, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		if IsNotFoundError(err) {
			return Release{}, fmt.Errorf("%s/%s: %w", c.owner, c.repo, ErrNoRelease)
		}
		return Release{}, fmt.Errorf("fetching latest release of %s/%s: %w", c.owner, c.repo, err)
	}

	out := Release{
		Tag:         rel.GetTagName(),
		Name:        rel.GetName(),
		URL:         rel.GetHTMLURL(),
		PublishedAt: rel.GetPublishedAt().Time,
	}
	for _, a := range rel.Assets {
		out.Assets = append(out.Assets, Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
			Size:        a.GetSize(),
		})
	}
	return out, nil
}

// Check compares current with the latest release. A current version that
// does not parse (a development build) never needs an update.
func (c *Checker) Check(ctx context.Context, current string) (Result, error) {
	log := logging.FromContext(ctx)

	latest, err := c.Latest(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{Current: current, Latest: latest}

	latestVersion, err := ParseVersion(latest.Tag)
	if err != nil {
		return res, fmt.Errorf("latest release tag: %w", err)
	}
	currentVersion, err := ParseVersion(current)
	if err != nil {
		log.Debug().Str("version", current).Msg("running an unversioned build; skipping comparison")
		return res, nil
	}

	res.NeedsUpdate = latestVersion.Compare(currentVersion) > 0
	log.Debug().
		Str("current", currentVersion.String()).
		Str("latest", latestVersion.String()).
		Bool("needs_update", res.NeedsUpdate).
		Msg("checked for updates")
	return res, nil
}

// IsNotFoundError returns true if the error represents an HTTP 404 response
// from the GitHub API.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == 404
	}
	return false
}
