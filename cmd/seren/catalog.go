package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/serenpaths/seren/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogJSONOutput bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the embedded challenge catalog",
	Long:  "Print levels, categories, and challenge counts without running the server.",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSONOutput, "json", false,
		"Output in JSON format")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	if catalogJSONOutput {
		levels := make([]map[string]any, 0, len(cat.Levels()))
		for _, level := range cat.Levels() {
			info := cat.LevelInfo(level)
			levels = append(levels, map[string]any{
				"level":      level,
				"name":       info.Name,
				"difficulty": info.Difficulty,
				"time_range": info.TimeRange,
				"challenges": len(cat.ChallengesForLevel(level)),
			})
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"levels":     levels,
			"categories": cat.Categories(),
			"total":      cat.Size(),
		})
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "LEVEL\tNAME\tDIFFICULTY\tTIME\tCHALLENGES")
	for _, level := range cat.Levels() {
		info := cat.LevelInfo(level)
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%d\n",
			level,
			info.Emoji,
			info.Name,
			info.Difficulty,
			info.TimeRange,
			len(cat.ChallengesForLevel(level)),
		)
	}
	w.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d challenges across %d categories:\n",
		cat.Size(), cat.CategoryCount())
	for _, name := range cat.Categories() {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", name)
	}

	return nil
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
