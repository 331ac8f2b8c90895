package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Andrew77447/newsapp/internal/web"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the headlines web server",
	Long:  "Serve the headlines page, JSON API, /health and /metrics over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := buildService()
		if err != nil {
			return err
		}

		addr := cfg.Listen
		if flagAddr != "" {
			addr = flagAddr
		}

		srv := web.NewServer(svc, cfg.Language, cfg.Limit, newLogger())
		if err := srv.Run(addr); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config, e.g. 127.0.0.1:9000)")
}
