package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"soldash/internal/app"
	"soldash/internal/dataset"
)

var (
	showDataset string
	showLimit   int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a loaded dataset as a terminal table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		opts := app.ShowOptions{
			Dataset: showDataset,
			Limit:   showLimit,
		}

		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().StringVar(&showDataset, "dataset", dataset.DatasetOverview, "Logical dataset name to print")
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Number of rows to display")
}
