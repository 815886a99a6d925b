package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	classifyCompany string
	classifyTitle   string
	classifyJSON    bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify raw posting text",
	Long: `Classify reads posting text from a file, or from stdin when no file or
"-" is given, and prints the verdict. Nothing is fetched and nothing is
cached.

Example:
  pbpaste | visadetector classify --company "Acme Corp"
  visadetector classify description.txt --title "Backend Engineer" --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyCompany, "company", "", "hiring organization, checked against known sponsors")
	classifyCmd.Flags().StringVar(&classifyTitle, "title", "", "job title")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the result as JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no posting text given")
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	// One-off text has no stable identity worth remembering
	cfg.Cache.Enabled = false

	p, cleanup, err := buildPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	out := p.ClassifyText(cmd.Context(), text, classifyCompany, classifyTitle)

	format := cfg.Output.Format
	if classifyJSON {
		format = pipeline.FormatJSON
	}
	return newRenderer(cfg).Render(cmd.OutOrStdout(), out.Result, format)
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
