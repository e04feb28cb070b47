package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-hclog"

	"dvkit/internal/version"
)

// Client talks to a single Dataverse installation over its HTTP API.
// All configuration is fixed at construction, so a Client is safe for
// concurrent use as long as the injected transport is.
type Client struct {
	installation Installation
	apiKey       string
	errorMode    ErrorMode
	responseMode ResponseMode
	httpClient   *http.Client
	logger       hclog.Logger
	userAgent    string
}

// Options configures a Client. The zero value gives raise-mode JSON
// responses over a fresh in-memory caching transport with TLS
// verification enabled.
type Options struct {
	// APIKey is sent as the X-Dataverse-key header when non-empty.
	APIKey string

	// OnError selects raise or suppress behavior. Default: raise.
	OnError ErrorMode

	// ResponseMode selects the shape of successful results. Default: json.
	ResponseMode ResponseMode

	// InsecureSkipVerify disables TLS certificate verification on the
	// default transport. It has no effect when HTTPClient is supplied;
	// configure that client's own transport instead.
	InsecureSkipVerify bool

	// HTTPClient substitutes the transport, e.g. to share one caching
	// session between clients. It must be safe for concurrent use if
	// the Client is shared across goroutines.
	HTTPClient *http.Client

	// Logger receives request and failure logs. Default: no logging.
	Logger hclog.Logger

	// SkipLookup stops NewFromHostname from consulting the public
	// installations directory.
	SkipLookup bool
}

// New creates a client for the given installation. The installation's
// hostname may carry an http(s):// scheme, which is stripped.
func New(installation Installation, opts Options) (*Client, error) {
	installation.Hostname = stripScheme(installation.Hostname)
	if installation.Hostname == "" {
		return nil, fmt.Errorf("installation hostname is required")
	}

	errorMode := opts.OnError
	if errorMode == "" {
		errorMode = ErrorModeRaise
	}
	if err := ValidateErrorMode(errorMode); err != nil {
		return nil, err
	}

	responseMode := opts.ResponseMode
	if responseMode == "" {
		responseMode = ResponseModeJSON
	}
	if err := ValidateResponseMode(responseMode); err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newCachingClient(opts.InsecureSkipVerify)
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		installation: installation,
		apiKey:       opts.APIKey,
		errorMode:    errorMode,
		responseMode: responseMode,
		httpClient:   httpClient,
		logger:       logger,
		userAgent:    "dvkit/" + version.Current,
	}, nil
}

// NewFromHostname creates a client for a bare hostname, resolving it
// to its directory record unless opts.SkipLookup is set. A hostname
// missing from the directory is not an error; the client just keeps a
// minimal installation record.
func NewFromHostname(ctx context.Context, hostname string, opts Options) (*Client, error) {
	hostname = stripScheme(hostname)
	installation := Installation{Hostname: hostname}

	if !opts.SkipLookup {
		found, err := LookupInstallation(ctx, opts.HTTPClient, hostname)
		if err != nil {
			return nil, err
		}
		if found != nil {
			installation = *found
		}
	}

	return New(installation, opts)
}

// Installation returns the installation record this client targets.
func (c *Client) Installation() Installation {
	return c.installation
}

// newCachingClient mirrors the cached session of the original tooling:
// an in-memory HTTP cache honoring standard response cache headers.
func newCachingClient(insecure bool) *http.Client {
	transport := httpcache.NewMemoryCacheTransport()
	if insecure {
		transport.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return transport.Client()
}

// get issues one GET against the installation's API and classifies the
// outcome per the configured policies. Every operation funnels through
// here so failures look the same regardless of endpoint.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*Result, error) {
	u := "https://" + c.installation.Hostname + "/api/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return c.fail(NewAPIError(ErrConnectionFailed,
			fmt.Sprintf("failed to create request: %v", err), u))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("X-Dataverse-key", c.apiKey)
	}

	c.logger.Debug("dataverse request", "method", http.MethodGet, "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(NewAPIError(ErrConnectionFailed, err.Error(), u))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return c.fail(&APIError{
			Kind:       classifyStatus(resp.StatusCode),
			Message:    errorMessage(body, resp.Status),
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       body,
		})
	}

	if c.responseMode == ResponseModeResponse {
		// Body left unread; the caller owns closing it.
		return &Result{Response: resp}, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return c.fail(&APIError{
			Kind:       ErrConnectionFailed,
			Message:    fmt.Sprintf("failed to read response: %v", err),
			URL:        u,
			StatusCode: resp.StatusCode,
		})
	}

	if c.responseMode == ResponseModeText {
		return &Result{Text: string(body)}, nil
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.fail(&APIError{
			Kind:       ErrDecodeFailed,
			Message:    fmt.Sprintf("invalid JSON in response: %v", err),
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       body,
		})
	}
	return &Result{JSON: payload}, nil
}

// fail applies the configured error mode to a classified failure.
func (c *Client) fail(apiErr *APIError) (*Result, error) {
	c.logger.Error("dataverse request failed",
		"url", apiErr.URL, "status", apiErr.StatusCode, "error", apiErr.Message)

	if c.errorMode == ErrorModeSuppress {
		return nil, nil
	}
	return nil, apiErr
}

// errorMessage extracts the message field from a Dataverse error
// envelope, falling back to the body text or the HTTP status line.
func errorMessage(body []byte, status string) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return status
	}
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
