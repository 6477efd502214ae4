package util

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/google/go-github/v63/github"
	"golang.org/x/mod/semver"
)

const (
	githubOwner = "dixieflatline76"
	githubRepo  = "setwallpaper"
)

// UpdateCheck holds the outcome of the update check.
type UpdateCheck struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	ReleaseNotes    string
}

// UpdateChecker polls GitHub releases of the project.
type UpdateChecker struct {
	client *github.Client
	owner  string
	repo   string
}

// NewUpdateChecker returns a checker that talks to GitHub with httpClient.
// A nil httpClient uses http.DefaultClient.
func NewUpdateChecker(httpClient *http.Client) *UpdateChecker {
	return &UpdateChecker{
		client: github.NewClient(httpClient),
		owner:  githubOwner,
		repo:   githubRepo,
	}
}

// Check compares config.AppVersion with the latest stable release.
func (c *UpdateChecker) Check(ctx context.Context) (*UpdateCheck, error) {
	release, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest GitHub release: %w", err)
	}

	current := canonicalVersion(config.AppVersion)
	latest := canonicalVersion(release.GetTagName())
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("latest release has an invalid version tag %q", release.GetTagName())
	}

	return &UpdateCheck{
		UpdateAvailable: semver.Compare(latest, current) > 0,
		CurrentVersion:  current,
		LatestVersion:   latest,
		ReleaseURL:      release.GetHTMLURL(),
		ReleaseNotes:    release.GetBody(),
	}, nil
}

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// CheckForUpdates runs an UpdateChecker with the default HTTP client.
func CheckForUpdates(ctx context.Context) (*UpdateCheck, error) {
	return NewUpdateChecker(nil).Check(ctx)
}
