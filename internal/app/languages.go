package app

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HermanKarlsson/statsvy-sub001/internal/config"
	"github.com/HermanKarlsson/statsvy-sub001/internal/output"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Show the active language mapping",
	Long: `Languages prints every language the scanner can detect, with its
category, extensions and special filenames, after applying the mapping
file and custom entries from the configuration.`,
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mapping, err := buildMapping(cfg)
	if err != nil {
		return err
	}

	if flagJSON {
		data, err := json.MarshalIndent(mapping, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	tbl := output.NewTable("Language", "Category", "Extensions", "Filenames")
	for _, name := range names {
		def := mapping[name]
		tbl.AddRow(name, def.Type,
			strings.Join(def.Extensions, " "),
			strings.Join(def.Filenames, " "))
	}
	tbl.Print()
	return nil
}
