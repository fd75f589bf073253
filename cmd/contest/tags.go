package main

import (
	"io"

	"github.com/amonks/contestsim/internal/ui"
	"github.com/amonks/contestsim/problem"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List topic filters for --tag",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var tagsJSON bool

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output as JSON")
}

func runTags(cmd *cobra.Command, args []string) error {
	topics := problem.Topics()
	if tagsJSON {
		return encodeJSON(cmd.OutOrStdout(), topics)
	}
	builder := ui.NewTableBuilder([]string{"SLUG", "NAME"}, len(topics))
	for _, topic := range topics {
		builder.AddRow(topic.Slug, topic.Name)
	}
	_, err := io.WriteString(cmd.OutOrStdout(), builder.String())
	return err
}
