package app

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/output"
	"github.com/HermanKarlsson/statsvy-sub001/internal/store"
)

var (
	historyFlagLimit   int
	historyFlagProject string
	historyFlagDiff    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored scans and diff recent ones",
	Long: `History lists the scans recorded in the local database, newest
first. With --diff it instead compares the two most recent scans and
shows per-metric trends.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Maximum number of scans to list")
	historyCmd.Flags().StringVar(&historyFlagProject, "project", "", "Restrict to one project name")
	historyCmd.Flags().BoolVar(&historyFlagDiff, "diff", false, "Diff the two most recent scans")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	if historyFlagDiff {
		return runHistoryDiff(db)
	}

	scans, err := db.ListScans(historyFlagProject, historyFlagLimit)
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("No scans recorded yet. Run 'statsvy scan' first.")
		return nil
	}

	if flagJSON {
		data, err := json.MarshalIndent(scans, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	tbl := output.NewTable("ID", "When", "Project", "Files", "Lines", "Size", "Dupes").
		AlignRight(0, 3, 4, 5, 6)
	for _, s := range scans {
		tbl.AddRow(
			fmt.Sprintf("%d", s.ID),
			humanize.Time(s.TakenAt),
			s.Project,
			humanize.Comma(int64(s.TotalFiles)),
			humanize.Comma(int64(s.TotalLines)),
			humanize.Bytes(uint64(s.TotalSizeBytes)),
			fmt.Sprintf("%d", s.DuplicateFiles),
		)
	}
	tbl.Print()
	return nil
}

func runHistoryDiff(db *store.DB) error {
	diff, err := db.DiffLatest(historyFlagProject)
	if err != nil {
		return err
	}
	if diff == nil {
		fmt.Println("Need at least two recorded scans to diff.")
		return nil
	}

	if flagJSON {
		data, err := json.MarshalIndent(diff, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s → %s\n\n",
		diff.Before.TakenAt.Format("2006-01-02 15:04"),
		diff.After.TakenAt.Format("2006-01-02 15:04"))

	tbl := output.NewTable("Metric", "Before", "After", "Delta").AlignRight(1, 2, 3)
	for _, row := range diff.Rows {
		delta := humanize.Comma(row.Delta)
		if row.Delta > 0 {
			delta = "+" + delta
		}
		tbl.AddRow(row.Metric,
			humanize.Comma(row.Before),
			humanize.Comma(row.After),
			delta)
	}
	tbl.Print()
	return nil
}
