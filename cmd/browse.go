package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Andrew77447/newsapp/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse headlines interactively",
	Long:  "Open an interactive list of headlines: navigate with j/k, open links with enter, refetch with r.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := buildService()
		if err != nil {
			return err
		}
		return tui.Run(svc, buildFilters(cfg))
	},
}
