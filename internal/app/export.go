package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"soldash/internal/charts"
	"soldash/internal/dataset"
	"soldash/internal/view"
)

// Export renders one tab's filtered view as CSV and/or PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	_ = ctx

	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	tab, ok := view.Find(opts.Tab)
	if !ok {
		return fmt.Errorf("unknown tab %q", opts.Tab)
	}

	snap, err := a.newLoader().Load()
	if err != nil {
		return err
	}

	sel := view.Selections{Categories: opts.Categories, TopN: opts.TopN}
	filtered := view.FilteredTable(snap, tab, sel)

	a.Logger.Info().
		Str("tab", tab.Slug).
		Int("rows", filtered.Len()).
		Int("warnings", len(snap.Warnings)).
		Msg("exporting filtered view")

	if opts.CSVPath != "" {
		if err := writeTableCSV(opts.CSVPath, tab, filtered); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := a.writeChartPNG(opts.PNGPath, snap, tab, filtered, opts.Chart); err != nil {
			return err
		}
	}

	return nil
}

func writeTableCSV(path string, tab view.TabSpec, t dataset.Table) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := make([]string, 0, len(tab.Columns))
	for _, col := range tab.Columns {
		header = append(header, col.Name)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := 0; i < t.Len(); i++ {
		record := make([]string, 0, len(tab.Columns))
		for _, col := range tab.Columns {
			record = append(record, cellString(t, i, col.Name))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func (a *App) writeChartPNG(path string, snap *dataset.Snapshot, tab view.TabSpec, filtered dataset.Table, chartName string) error {
	if len(tab.Charts) == 0 {
		return fmt.Errorf("tab %q has no charts", tab.Slug)
	}

	spec := tab.Charts[0]
	if chartName != "" {
		var ok bool
		if spec, ok = tab.Chart(chartName); !ok {
			return fmt.Errorf("tab %q has no chart %q", tab.Slug, chartName)
		}
	}

	t := filtered
	if spec.Dataset != "" {
		t = snap.Table(spec.Dataset)
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	params := charts.Params{
		Title:       spec.Title,
		LabelColumn: spec.LabelColumn,
		ValueColumn: spec.ValueColumn,
		XColumn:     spec.XColumn,
		YColumn:     spec.YColumn,
		GroupColumn: spec.GroupColumn,
		Width:       a.Config.Charts.Width,
		Height:      a.Config.Charts.Height,
		Bins:        a.Config.Charts.HistogramBins,
	}
	return charts.Render(spec.Kind, t, params, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
