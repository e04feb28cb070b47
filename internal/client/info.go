package client

import (
	"context"
	"fmt"
	"net/url"

	"dvkit/internal/version"
)

// ServerVersion returns the Dataverse version and build metadata.
func (c *Client) ServerVersion(ctx context.Context) (*Result, error) {
	return c.get(ctx, "info/version", nil)
}

// ServerName returns the name of the app server that answered. Useful
// when an installation runs multiple servers behind a load balancer.
func (c *Client) ServerName(ctx context.Context) (*Result, error) {
	return c.get(ctx, "info/server", nil)
}

// APITermsOfUse returns the installation's configured API terms of use.
func (c *Client) APITermsOfUse(ctx context.Context) (*Result, error) {
	return c.get(ctx, "info/apiTermsOfUse", nil)
}

// ExportFormats returns the available metadata export formats,
// including custom ones. Available on Dataverse 6.5 and later.
func (c *Client) ExportFormats(ctx context.Context) (*Result, error) {
	return c.get(ctx, "info/exportFormats", nil)
}

// ZipDownloadLimit returns the configured zip download limit in bytes.
func (c *Client) ZipDownloadLimit(ctx context.Context) (*Result, error) {
	return c.get(ctx, "info/zipDownloadLimit", nil)
}

// MetadataBlocks lists brief info about every metadata block registered
// on the server.
func (c *Client) MetadataBlocks(ctx context.Context) (*Result, error) {
	return c.get(ctx, "metadatablocks", nil)
}

// MetadataBlock returns one block, including its allowed controlled
// vocabulary values. identifier is the block's database id or its name
// (e.g. "citation").
func (c *Client) MetadataBlock(ctx context.Context, identifier string) (*Result, error) {
	return c.get(ctx, "metadatablocks/"+url.PathEscape(identifier), nil)
}

// IsAtLeast reports whether the server runs at least the given version,
// e.g. "5.13". The client must be in JSON response mode.
func (c *Client) IsAtLeast(ctx context.Context, min string) (bool, error) {
	if c.responseMode != ResponseModeJSON {
		return false, fmt.Errorf("IsAtLeast requires the json response mode")
	}

	res, err := c.ServerVersion(ctx)
	if err != nil {
		return false, err
	}
	if res == nil {
		// Failure suppressed by the error mode.
		return false, nil
	}

	versionStr := ""
	if data, ok := res.JSON["data"].(map[string]interface{}); ok {
		versionStr, _ = data["version"].(string)
	}
	if versionStr == "" {
		return false, fmt.Errorf("server version missing from info/version response")
	}

	return version.AtLeast(versionStr, min)
}
