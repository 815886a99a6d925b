package cli

import (
	"fmt"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/sponsors"
	"github.com/spf13/cobra"
)

var sponsorCheck string

// sponsorsCmd lists the known-sponsor registry
var sponsorsCmd = &cobra.Command{
	Use:   "sponsors",
	Short: "List or query known visa sponsors",
	Long: `List the organizations treated as known visa sponsors, including any
added through detection.sponsors_file.

Example:
  visadetector sponsors
  visadetector sponsors --check "Google LLC"`,
	Args: cobra.NoArgs,
	RunE: runSponsors,
}

func init() {
	rootCmd.AddCommand(sponsorsCmd)
	sponsorsCmd.Flags().StringVar(&sponsorCheck, "check", "", "report whether this organization is a known sponsor")
}

func runSponsors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var extra []sponsors.Sponsor
	if cfg.Detection.SponsorsFile != "" {
		extra, err = sponsors.LoadFile(cfg.Detection.SponsorsFile)
		if err != nil {
			return err
		}
	}
	registry := sponsors.NewRegistry(extra...)
	out := cmd.OutOrStdout()

	if sponsorCheck != "" {
		res := registry.Lookup(sponsorCheck)
		if res.IsKnown {
			fmt.Fprintf(out, "✓ %s is a known sponsor (%s)\n", sponsorCheck, res.MatchedName)
		} else {
			fmt.Fprintf(out, "✗ %s is not on the known-sponsor list\n", sponsorCheck)
		}
		return nil
	}

	for _, name := range registry.Names() {
		fmt.Fprintln(out, name)
	}
	fmt.Fprintf(out, "\n%d known sponsors\n", registry.Len())
	return nil
}
