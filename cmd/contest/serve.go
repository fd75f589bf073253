package main

import (
	"github.com/amonks/contestsim/api"
	"github.com/amonks/contestsim/leetcode"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the contest service",
	Long: `Run the contest service that builds contests from the LeetCode problem list
and checks recent submissions. The client reaches it through [api] url.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr     string
	serveEndpoint string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address or port (default from [server] addr)")
	serveCmd.Flags().StringVar(&serveEndpoint, "leetcode-endpoint", leetcode.DefaultEndpoint, "LeetCode GraphQL endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, err := api.ResolveAddr(serveAddr, cfg.Server.Addr)
	if err != nil {
		return err
	}
	server, err := api.NewServer(api.ServerOptions{
		Platform: leetcode.NewClient(leetcode.Options{
			Endpoint: serveEndpoint,
			Timeout:  cfg.API.Timeout.Duration,
		}),
		Logger: &log.Logger,
	})
	if err != nil {
		return err
	}
	return server.Serve(addr)
}
