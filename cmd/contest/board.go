package main

import (
	"fmt"

	"github.com/amonks/contestsim/api"
	"github.com/amonks/contestsim/internal/paths"
	"github.com/amonks/contestsim/internal/state"
	"github.com/amonks/contestsim/session"
	"github.com/amonks/contestsim/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Serve a local web scoreboard for the current contest",
	Long: `Serve a read-only web page showing the current contest. The page reloads
every 15 seconds while a contest runs. The clock and submission checks stay
with ` + "`contest watch`" + `.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

var boardAddr string

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().StringVar(&boardAddr, "addr", "", "Listen address or port (default from [board] addr)")
}

func runBoard(cmd *cobra.Command, args []string) error {
	addr, err := api.ResolveAddr(boardAddr, cfg.Board.Addr)
	if err != nil {
		return err
	}
	dir, err := paths.DefaultStateDir()
	if err != nil {
		return err
	}
	handler := web.NewHandler(web.Options{
		Store:    session.NewDurableStore(state.NewStore(dir)),
		Duration: cfg.Contest.Duration.Duration,
		Logger:   &log.Logger,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Scoreboard at http://%s/\n", addr)
	return api.ServeHTTP(addr, handler, log.Logger)
}
