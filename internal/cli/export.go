package cli

import (
	"github.com/spf13/cobra"

	"soldash/internal/app"
)

var (
	exportTab        string
	exportCSVPath    string
	exportPNGPath    string
	exportChart      string
	exportCategories []string
	exportTopN       int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one tab's filtered view as CSV and/or PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			Tab:        exportTab,
			CSVPath:    exportCSVPath,
			PNGPath:    exportPNGPath,
			Chart:      exportChart,
			Categories: exportCategories,
			TopN:       exportTopN,
		}

		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportTab, "tab", "overview", "Tab slug to export")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write CSV data")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write PNG chart")
	exportCmd.Flags().StringVar(&exportChart, "chart", "", "Chart name to render (defaults to the tab's first chart)")
	exportCmd.Flags().StringSliceVar(&exportCategories, "category", nil, "Category filter (repeatable)")
	exportCmd.Flags().IntVar(&exportTopN, "top", 0, "Keep only the top N rows (0 = all)")
}
