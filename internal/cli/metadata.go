package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dvkit/internal/client"
	"dvkit/internal/config"
)

var metadataJSON bool

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata [identifier]",
	Short: "List metadata blocks or describe one",
	Long: `List the metadata blocks registered on a Dataverse installation, or
describe a single block including its controlled vocabulary values.

Examples:
  dvkit metadata
  dvkit metadata citation
  dvkit metadata geospatial --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier := ""
		if len(args) == 1 {
			identifier = args[0]
		}
		return runMetadata(identifier)
	},
}

func runMetadata(identifier string) error {
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

	var res *client.Result
	if identifier != "" {
		res, err = c.MetadataBlock(ctx, identifier)
	} else {
		res, err = c.MetadataBlocks(ctx)
	}
	if err != nil {
		return fmt.Errorf("metadata request failed: %w", err)
	}

	if metadataJSON || identifier != "" {
		return printJSON(res.JSON)
	}

	printMetadataBlocks(res.JSON)
	return nil
}

func printMetadataBlocks(payload map[string]interface{}) {
	blocks, _ := payload["data"].([]interface{})
	if len(blocks) == 0 {
		fmt.Printf("No metadata blocks found\n")
		return
	}

	fmt.Printf("📋 %d metadata block(s):\n\n", len(blocks))

	for _, raw := range blocks {
		block, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		name, _ := block["name"].(string)
		displayName, _ := block["displayName"].(string)

		fmt.Printf("📦 %s\n", name)
		if displayName != "" {
			fmt.Printf("   %s\n", displayName)
		}
		fmt.Printf("\n")
	}

	fmt.Printf("💡 Describe a block with: dvkit metadata <name>\n")
}

func init() {
	metadataCmd.Flags().BoolVar(&metadataJSON, "json", false, "print the raw JSON response")
}
