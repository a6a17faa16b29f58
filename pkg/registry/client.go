// Package registry queries the crates registry HTTP API for the latest
// published version and the metadata shown in the update checklist.
//
// Lookups follow the crates.io web API: a single GET per crate returning the
// crate object and its version list. Failures are reported per crate so one
// unreachable entry never aborts the scan.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/verbose"
)

const (
	// DefaultBaseURL is the crates.io API endpoint.
	DefaultBaseURL = "https://crates.io"

	// userAgent identifies the tool, as the crates.io API policy requires.
	userAgent = "crateup (https://github.com/crateup/crateup)"
)

// CrateMetadata is the registry's view of a crate relative to an installed
// version.
//
// Fields:
//   - LatestVersion: The newest stable version the registry advertises; falls
//     back to the installed version when the registry reports none
//   - LatestDate: Publish timestamp of the latest version ("" when unknown)
//   - CurrentDate: Publish timestamp of the installed version ("" when unknown)
//   - Repository: The crate's repository URL ("" when unset)
//   - Description: The crate's description with newlines folded to spaces
type CrateMetadata struct {
	LatestVersion string
	LatestDate    string
	CurrentDate   string
	Repository    string
	Description   string
}

// Client queries a crates registry API endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the registry at baseURL. An empty baseURL
// selects crates.io. A zero timeout disables the per-request limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// crateResponse mirrors the fields of the crates API response the tool reads.
type crateResponse struct {
	Crate struct {
		MaxStableVersion string `json:"max_stable_version"`
		Repository       string `json:"repository"`
		Description      string `json:"description"`
	} `json:"crate"`
	Versions []struct {
		Num       string `json:"num"`
		UpdatedAt string `json:"updated_at"`
	} `json:"versions"`
}

// Lookup fetches the registry metadata for crate, annotating publish dates
// relative to the installed version.
//
// It performs the following operations:
//   - Issues GET {base}/api/v1/crates/{crate} with the required User-Agent
//   - Treats an empty 200 body as an empty document
//   - Folds newlines in string fields to single spaces
//   - Resolves publish dates from the version list, trimming a leading
//     "=" or "^" from the installed version before matching
//
// Returns:
//   - *CrateMetadata: The crate metadata; LatestVersion falls back to
//     installed when the registry reports no stable version
//   - error: Returns a RegistryError on transport failure, non-200 status, or
//     an undecodable body; returns nil on success
func (c *Client) Lookup(ctx context.Context, crate, installed string) (*CrateMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/v1/crates/%s", c.baseURL, url.PathEscape(crate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewRegistryError(crate, 0, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewRegistryError(crate, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewRegistryError(crate, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewRegistryError(crate, 0, err)
	}

	var raw crateResponse
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, errors.NewRegistryError(crate, 0, err)
		}
	}

	latest := collapse(raw.Crate.MaxStableVersion)
	if latest == "" {
		latest = installed
	}
	verbose.Infof("Registry reports %s latest %s", crate, latest)

	return &CrateMetadata{
		LatestVersion: latest,
		LatestDate:    versionDate(raw, latest),
		CurrentDate:   versionDate(raw, installed),
		Repository:    collapse(raw.Crate.Repository),
		Description:   collapse(raw.Crate.Description),
	}, nil
}

// collapse trims the string and folds embedded newlines to single spaces, the
// normal form for single-line display of registry fields.
func collapse(s string) string {
	return strings.Join(strings.Split(strings.TrimSpace(s), "\n"), " ")
}

// versionDate returns the trimmed publish timestamp of the version entry
// matching version, ignoring a leading "=" or "^" pin operator.
func versionDate(raw crateResponse, version string) string {
	target := strings.TrimLeft(version, "=^")
	for _, v := range raw.Versions {
		if v.Num == target {
			return strings.TrimSpace(v.UpdatedAt)
		}
	}
	return ""
}
