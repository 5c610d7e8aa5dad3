package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarseek/scholar-search-service/internal/domain"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Search the authors collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		perPage, _ := cmd.Flags().GetInt("per-page")
		pageNum, _ := cmd.Flags().GetInt("page")
		asJSON, _ := cmd.Flags().GetBool("json")

		req, err := domain.NewSearchRequest(query, domain.ResourceAuthors, perPage, pageNum)
		if err != nil {
			return err
		}

		client := clientFromFlags(cmd)
		page, err := client.SearchAuthors(cmd.Context(), req)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}

		fmt.Printf("Found %d authors (page %d, %d per page)\n\n", page.TotalCount, page.Page, page.PerPage)
		for i, author := range page.Items {
			fmt.Printf("%d. %s\n", req.Offset()+i+1, author.Name)
			if author.Institution != "" {
				fmt.Printf("   Institution: %s\n", author.Institution)
			}
			if author.ORCID != "" {
				fmt.Printf("   ORCID: %s\n", author.ORCID)
			}
			fmt.Printf("   Works: %d  Citations: %d  h-index: %d  i10-index: %d\n",
				author.WorksCount, author.CitationCount, author.HIndex, author.I10Index)
			if len(author.Concepts) > 0 {
				fmt.Printf("   Fields: %s\n", strings.Join(author.Concepts, ", "))
			}
			fmt.Printf("   OpenAlex: %s\n\n", author.OpenAlexID)
		}
		return nil
	},
}

func init() {
	authorsCmd.Flags().StringP("query", "q", "", "free-text search query")
	authorsCmd.Flags().Int("per-page", domain.DefaultPerPage, "results per page (5-50)")
	authorsCmd.Flags().Int("page", 1, "page number")
	authorsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(authorsCmd)
}
