package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/hostbridge/internal/cli/styles"
)

var (
	journalLimit int
	journalPurge bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recent bridge errors",
	Long: `List the most recent errors recorded by the diagnostics journal.

With --purge, entries older than diagnostics.journal_retention are deleted
instead.`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 50, "number of entries to show")
	journalCmd.Flags().BoolVar(&journalPurge, "purge", false, "delete entries past the retention period")
}

func runJournal(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewJournalRenderer(app.Theme)
	out := cmd.OutOrStdout()

	journal := app.Journal()
	if journal == nil {
		fmt.Fprintln(out, renderer.RenderDisabled())
		return nil
	}
	ctx := app.Context()

	if journalPurge {
		cutoff := time.Now().Add(-app.Config.Diagnostics.JournalRetention)
		removed, err := journal.Purge(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("purge journal: %w", err)
		}
		fmt.Fprintln(out, renderer.RenderPurged(removed, cutoff))
		return nil
	}

	entries, err := journal.Recent(ctx, journalLimit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	fmt.Fprintln(out, renderer.RenderEntries(app.JournalPath(), entries))
	return nil
}
