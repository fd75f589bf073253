package main

import (
	"errors"
	"fmt"

	"github.com/amonks/contestsim/problem"
	"github.com/amonks/contestsim/session"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new contest",
	Long: `Start a new contest. The contest service draws one Easy, two Medium and one
Hard problem from the selected pool, and the clock starts immediately.

Without --detach the live scoreboard opens; quitting it leaves the contest
running, and ` + "`contest watch`" + ` reopens it.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

var (
	startUser   string
	startCookie string
	startMode   problem.PoolMode
	startTags   []string
	startDetach bool
)

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&startUser, "user", "", "LeetCode username (required unless configured or saved)")
	startCmd.Flags().StringVar(&startCookie, "cookie", "", "LEETCODE_SESSION cookie, needed for solved/unsolved pools")
	startCmd.Flags().Var(&startMode, "mode", "Problem pool: all, solved or unsolved")
	startCmd.Flags().StringSliceVar(&startTags, "tag", nil, "Topic filter; repeatable (see `contest tags`)")
	startCmd.Flags().BoolVar(&startDetach, "detach", false, "Start without opening the live scoreboard")
	addStartFlagAliases(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	a, phase, err := resume()
	if err != nil {
		return err
	}
	if phase != session.PhaseConfiguring {
		return fmt.Errorf("%w; run `contest reset` first", session.ErrSessionActive)
	}

	username, credential, err := a.resolveIdentity(startUser, startCookie)
	if err != nil {
		return err
	}
	mode := startMode
	if !cmd.Flags().Changed("mode") {
		mode, err = problem.ParsePoolMode(cfg.Contest.Mode)
		if err != nil {
			return fmt.Errorf("config contest.mode: %w", err)
		}
	}
	tags := startTags
	if !cmd.Flags().Changed("tag") {
		tags = cfg.Contest.Topics
	}
	if mode != problem.PoolAll && credential == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: --mode %s needs --cookie to know which problems you solved\n", mode)
	}

	err = a.controller.Start(cmd.Context(), session.StartConfig{
		Identity:   username,
		Credential: credential,
		Mode:       mode,
		Topics:     tags,
	})
	if errors.Is(err, session.ErrIdentityRequired) {
		return fmt.Errorf("%w: pass --user or set [identity] username", err)
	}
	if err != nil {
		return err
	}

	view := a.controller.View()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Contest started for %s: %d problems, %s on the clock.\n", view.Username, len(view.Rows), view.Countdown)
	if startDetach {
		for i, row := range view.Rows {
			fmt.Fprintf(out, "  %d. %s (%s) %s\n", i+1, row.Title, row.Difficulty, row.URL)
		}
		return nil
	}
	return watchContest(cmd, a)
}
