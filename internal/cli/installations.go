package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"dvkit/internal/client"
)

var (
	installHostGlob string
	installCountry  string
)

// installationsCmd represents the installations command
var installationsCmd = &cobra.Command{
	Use:   "installations",
	Short: "List known Dataverse installations",
	Long: `List the public directory of known Dataverse installations.

Results can be narrowed by hostname glob or by country.

Examples:
  dvkit installations
  dvkit installations --host '*.harvard.edu'
  dvkit installations --country Norway`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstallations()
	},
}

func runInstallations() error {
	ctx, cancel := client.WithTimeout(context.Background())
	defer cancel()

	installs, err := client.FetchInstallations(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch installations: %w", err)
	}

	if installHostGlob != "" {
		installs, err = client.MatchInstallations(installs, installHostGlob)
		if err != nil {
			return err
		}
	}

	if installCountry != "" {
		var filtered []client.Installation
		for _, inst := range installs {
			if inst.Country != nil && strings.EqualFold(*inst.Country, installCountry) {
				filtered = append(filtered, inst)
			}
		}
		installs = filtered
	}

	if len(installs) == 0 {
		fmt.Printf("No installations matched\n")
		return nil
	}

	// Directory descriptions can carry HTML markup; strip it before
	// writing to the terminal.
	policy := bluemonday.StrictPolicy()

	fmt.Printf("📋 %d installation(s):\n\n", len(installs))

	for _, inst := range installs {
		name := inst.Hostname
		if inst.Name != nil && *inst.Name != "" {
			name = *inst.Name
		}

		fmt.Printf("🌐 %s\n", name)
		fmt.Printf("   Host: %s\n", inst.Hostname)

		if inst.Country != nil && *inst.Country != "" {
			fmt.Printf("   Country: %s\n", *inst.Country)
		}

		if inst.Description != nil {
			desc := strings.TrimSpace(policy.Sanitize(*inst.Description))
			if desc != "" {
				fmt.Printf("   %s\n", desc)
			}
		}

		fmt.Printf("\n")
	}

	fmt.Printf("💡 Query one with: dvkit search '*' --server <host>\n")

	return nil
}

func init() {
	installationsCmd.Flags().StringVar(&installHostGlob, "host", "", "hostname glob filter, e.g. '*.edu'")
	installationsCmd.Flags().StringVar(&installCountry, "country", "", "country filter (case-insensitive)")
}
