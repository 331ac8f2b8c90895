package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Andrew77447/newsapp/internal/query"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the accepted categories and country codes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Categories: %s\n", strings.Join(query.Categories(), ", "))
		fmt.Printf("Countries:  %s\n", strings.Join(query.Countries(), ", "))
	},
}
