package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarseek/scholar-search-service/internal/domain"
)

var worksCmd = &cobra.Command{
	Use:   "works",
	Short: "Search the works (papers) collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		perPage, _ := cmd.Flags().GetInt("per-page")
		pageNum, _ := cmd.Flags().GetInt("page")
		asJSON, _ := cmd.Flags().GetBool("json")

		req, err := domain.NewSearchRequest(query, domain.ResourceWorks, perPage, pageNum)
		if err != nil {
			return err
		}

		client := clientFromFlags(cmd)
		page, err := client.SearchWorks(cmd.Context(), req)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}

		fmt.Printf("Found %d works (page %d, %d per page)\n\n", page.TotalCount, page.Page, page.PerPage)
		for i, work := range page.Items {
			fmt.Printf("%d. %s\n", req.Offset()+i+1, work.Title)
			if names := work.DisplayAuthors(); len(names) > 0 {
				fmt.Printf("   Authors: %s\n", strings.Join(names, ", "))
			}
			if work.Year != 0 {
				fmt.Printf("   Year: %d\n", work.Year)
			}
			if work.Venue != "" {
				fmt.Printf("   Published in: %s\n", work.Venue)
			}
			fmt.Printf("   Citations: %d\n", work.CitationCount)
			if work.DOI != "" {
				fmt.Printf("   DOI: %s\n", work.DOI)
			}
			fmt.Printf("   OpenAlex: %s\n\n", work.OpenAlexID)
		}
		return nil
	},
}

func init() {
	worksCmd.Flags().StringP("query", "q", "", "free-text search query")
	worksCmd.Flags().Int("per-page", domain.DefaultPerPage, "results per page (5-50)")
	worksCmd.Flags().Int("page", 1, "page number")
	worksCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(worksCmd)
}
