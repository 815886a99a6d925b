package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd shows recorded verdicts
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently recorded verdicts",
	Long: `Show verdicts recorded in the history database (history.path), newest
first. Verdicts are recorded when history.enabled is true.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of records to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print records as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := store.Open(cmd.Context(), cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = h.Close() }()

	records, err := h.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No verdicts recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCANNED\tSTATUS\tREASON\tCOMPANY\tTITLE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ScannedAt.Local().Format("2006-01-02 15:04"),
			r.Verdict.Status, r.Verdict.Reason, r.Company, r.Title)
	}
	return tw.Flush()
}
