package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dvkit/internal/client"
	"dvkit/internal/config"
)

var (
	searchTypes          []string
	searchSubtree        string
	searchSort           string
	searchOrder          string
	searchPerPage        int
	searchStart          int
	searchFQ             []string
	searchFacets         bool
	searchRelevance      bool
	searchEntityIDs      bool
	searchGeoPoint       string
	searchGeoRadius      string
	searchMetadataFields []string
	searchJSON           bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a Dataverse installation",
	Long: `Search a Dataverse installation for dataverses, datasets and files.

Use "title:data" style terms to search a single field, and "*" as a
wildcard alone or adjacent to a term.

Examples:
  dvkit search climate
  dvkit search "title:ocean" --type dataset --sort date --order desc
  dvkit search '*' --subtree harvard --per-page 50
  dvkit search coral --geo-point 42.3,-71.1 --geo-radius 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(args[0])
	},
}

func runSearch(queryText string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv, err := resolveServer(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("🔍 Searching for: %s\n", queryText)
		fmt.Printf("🌐 Server: %s\n", srv.Hostname)
	}

	c, err := newClient(srv)
	if err != nil {
		return err
	}

	query := client.SearchQuery{
		Query:          queryText,
		Types:          searchTypes,
		Subtree:        searchSubtree,
		Sort:           searchSort,
		Order:          searchOrder,
		PerPage:        searchPerPage,
		Start:          searchStart,
		ShowRelevance:  searchRelevance,
		ShowFacets:     searchFacets,
		FilterQueries:  searchFQ,
		ShowEntityIDs:  searchEntityIDs,
		GeoPoint:       searchGeoPoint,
		GeoRadius:      searchGeoRadius,
		MetadataFields: searchMetadataFields,
	}

	ctx, cancel := client.WithTimeout(context.Background())
	defer cancel()

	res, err := c.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(res.JSON)
	}

	printSearchResults(res.JSON)
	return nil
}

func printSearchResults(payload map[string]interface{}) {
	data, _ := payload["data"].(map[string]interface{})
	if data == nil {
		fmt.Printf("No data in response\n")
		return
	}

	total, _ := data["total_count"].(float64)
	items, _ := data["items"].([]interface{})

	if len(items) == 0 {
		fmt.Printf("No results found\n")
		return
	}

	fmt.Printf("📋 Found %.0f result(s):\n\n", total)

	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		name, _ := item["name"].(string)
		kind, _ := item["type"].(string)
		fmt.Printf("📦 %s (%s)\n", name, kind)

		if u, ok := item["url"].(string); ok && u != "" {
			fmt.Printf("   %s\n", u)
		}

		if desc, ok := item["description"].(string); ok && desc != "" {
			fmt.Printf("   %s\n", desc)
		}

		fmt.Printf("\n")
	}
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchTypes, "type", nil, "result type: dataverse, dataset or file (repeatable)")
	searchCmd.Flags().StringVar(&searchSubtree, "subtree", "", "collection identifier to search under")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort field (name or date)")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "sort order (asc or desc)")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 0, "results per page, 1-1000")
	searchCmd.Flags().IntVar(&searchStart, "start", 0, "paging cursor")
	searchCmd.Flags().StringArrayVar(&searchFQ, "fq", nil, "filter query (repeatable)")
	searchCmd.Flags().BoolVar(&searchFacets, "show-facets", false, "include facets in the response")
	searchCmd.Flags().BoolVar(&searchRelevance, "show-relevance", false, "include match relevance details")
	searchCmd.Flags().BoolVar(&searchEntityIDs, "show-entity-ids", false, "include database entity IDs")
	searchCmd.Flags().StringVar(&searchGeoPoint, "geo-point", "", `latitude,longitude such as "42.3,-71.1"`)
	searchCmd.Flags().StringVar(&searchGeoRadius, "geo-radius", "", "radius in kilometers from --geo-point")
	searchCmd.Flags().StringArrayVar(&searchMetadataFields, "metadata-field", nil, "extra metadata field to include (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the raw JSON response")
}
