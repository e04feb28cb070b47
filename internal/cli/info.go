package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dvkit/internal/client"
	"dvkit/internal/config"
)

var infoAtLeast string

// infoCmd groups the server information commands
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server information",
	Long: `Show information about a Dataverse installation.

Examples:
  dvkit info version
  dvkit info version --at-least 5.13
  dvkit info export-formats --server demo.dataverse.org`,
}

var infoVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the server's Dataverse version and build",
	RunE: func(cmd *cobra.Command, args []string) error {
		if infoAtLeast != "" {
			return runVersionCheck(infoAtLeast)
		}
		return runInfo(func(ctx context.Context, c *client.Client) (*client.Result, error) {
			return c.ServerVersion(ctx)
		})
	},
}

var infoServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Show the name of the answering app server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(func(ctx context.Context, c *client.Client) (*client.Result, error) {
			return c.ServerName(ctx)
		})
	},
}

var infoTermsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Show the API terms of use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(func(ctx context.Context, c *client.Client) (*client.Result, error) {
			return c.APITermsOfUse(ctx)
		})
	},
}

var infoExportFormatsCmd = &cobra.Command{
	Use:   "export-formats",
	Short: "Show the available metadata export formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(func(ctx context.Context, c *client.Client) (*client.Result, error) {
			return c.ExportFormats(ctx)
		})
	},
}

var infoZipLimitCmd = &cobra.Command{
	Use:   "zip-limit",
	Short: "Show the zip download limit in bytes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(func(ctx context.Context, c *client.Client) (*client.Result, error) {
			return c.ZipDownloadLimit(ctx)
		})
	},
}

// runInfo runs one info operation against the resolved server and
// prints the JSON payload.
func runInfo(call func(ctx context.Context, c *client.Client) (*client.Result, error)) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv, err := resolveServer(cfg)
	if err != nil {
		return err
	}

	c, err := newClient(srv)
	if err != nil {
		return err
	}

	ctx, cancel := client.WithTimeout(context.Background())
	defer cancel()

	res, err := call(ctx, c)
	if err != nil {
		return err
	}

	return printJSON(res.JSON)
}

func runVersionCheck(min string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv, err := resolveServer(cfg)
	if err != nil {
		return err
	}

	c, err := newClient(srv)
	if err != nil {
		return err
	}

	ctx, cancel := client.WithTimeout(context.Background())
	defer cancel()

	ok, err := c.IsAtLeast(ctx, min)
	if err != nil {
		return err
	}

	if ok {
		fmt.Printf("✅ %s runs at least Dataverse %s\n", srv.Hostname, min)
	} else {
		fmt.Printf("❌ %s runs a Dataverse older than %s\n", srv.Hostname, min)
	}
	return nil
}

func init() {
	infoVersionCmd.Flags().StringVar(&infoAtLeast, "at-least", "", "check the server runs at least this version")

	infoCmd.AddCommand(infoVersionCmd)
	infoCmd.AddCommand(infoServerCmd)
	infoCmd.AddCommand(infoTermsCmd)
	infoCmd.AddCommand(infoExportFormatsCmd)
	infoCmd.AddCommand(infoZipLimitCmd)
}
