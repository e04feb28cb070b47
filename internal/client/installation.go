package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// InstallationsDirectoryURL is the public directory of known Dataverse
// installations, maintained in the IQSS dataverse-installations repository.
const InstallationsDirectoryURL = "https://raw.githubusercontent.com/IQSS/dataverse-installations/refs/heads/main/data/data.json"

// Installation describes one deployed Dataverse server. Only Hostname
// is needed to talk to a server; everything else is directory metadata.
// Optional fields are pointers so a missing value stays distinguishable
// from a zero one.
type Installation struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	Hostname       string   `json:"hostname,omitempty"`
	Metrics        *bool    `json:"metrics,omitempty"`
	LaunchYear     *string  `json:"launch_year,omitempty"`
	Country        *string  `json:"country,omitempty"`
	Continent      *string  `json:"continent,omitempty"`
	HarvestingSets []string `json:"harvesting_sets,omitempty"`
	CoreTrustSeals []string `json:"core_trust_seals,omitempty"`
	GDCCMember     *bool    `json:"gdcc_member,omitempty"`
	DOIAuthority   *string  `json:"doi_authority,omitempty"`
	Board          *string  `json:"board,omitempty"`
	ContactEmail   *string  `json:"contact_email,omitempty"`
}

// directoryEnvelope mirrors the top-level shape of data.json.
type directoryEnvelope struct {
	Installations []Installation `json:"installations"`
}

// FetchInstallations downloads and parses the public installations
// directory. Entries come back in directory order, unfiltered and
// undeduplicated; fields missing from an entry stay nil. A nil
// httpClient falls back to http.DefaultClient. Failures always surface
// as an *APIError; there is no suppress mode on this path.
func FetchInstallations(ctx context.Context, httpClient *http.Client) ([]Installation, error) {
	return fetchInstallationsFrom(ctx, httpClient, InstallationsDirectoryURL)
}

func fetchInstallationsFrom(ctx context.Context, httpClient *http.Client, directoryURL string) ([]Installation, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directoryURL, nil)
	if err != nil {
		return nil, NewAPIError(ErrConnectionFailed,
			fmt.Sprintf("failed to create request: %v", err), directoryURL)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, NewAPIError(ErrConnectionFailed, err.Error(), directoryURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{
			Kind:       ErrConnectionFailed,
			Message:    fmt.Sprintf("failed to read response: %v", err),
			URL:        directoryURL,
			StatusCode: resp.StatusCode,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			Kind:       classifyStatus(resp.StatusCode),
			Message:    errorMessage(body, resp.Status),
			URL:        directoryURL,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	var envelope directoryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{
			Kind:       ErrDecodeFailed,
			Message:    fmt.Sprintf("invalid JSON in directory response: %v", err),
			URL:        directoryURL,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	return envelope.Installations, nil
}

// LookupInstallation resolves a hostname to its directory record. It
// returns nil without an error when the directory has no entry for the
// hostname.
func LookupInstallation(ctx context.Context, httpClient *http.Client, hostname string) (*Installation, error) {
	hostname = stripScheme(hostname)

	installs, err := FetchInstallations(ctx, httpClient)
	if err != nil {
		return nil, err
	}

	for i := range installs {
		if installs[i].Hostname == hostname {
			return &installs[i], nil
		}
	}
	return nil, nil
}

// MatchInstallations filters records whose hostname matches a glob
// pattern such as "*.harvard.edu".
func MatchInstallations(installs []Installation, pattern string) ([]Installation, error) {
	var matched []Installation
	for _, inst := range installs {
		ok, err := doublestar.Match(pattern, inst.Hostname)
		if err != nil {
			return nil, fmt.Errorf("invalid hostname pattern %q: %w", pattern, err)
		}
		if ok {
			matched = append(matched, inst)
		}
	}
	return matched, nil
}

// stripScheme removes a leading http(s):// and a trailing slash from a
// hostname, so callers may pass either a bare host or a base URL.
func stripScheme(hostname string) string {
	hostname = strings.TrimPrefix(hostname, "https://")
	hostname = strings.TrimPrefix(hostname, "http://")
	return strings.TrimSuffix(hostname, "/")
}
