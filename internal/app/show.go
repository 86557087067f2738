package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"soldash/internal/dataset"
)

// Show prints one dataset as an aligned terminal table.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	_ = ctx

	snap, err := a.newLoader().Load()
	if err != nil {
		return err
	}

	for _, warn := range snap.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
	}

	table := snap.Table(opts.Dataset)
	if table.IsEmpty() {
		fmt.Fprintf(os.Stdout, "dataset %q is empty\n", opts.Dataset)
		return nil
	}

	limit := table.Len()
	if opts.Limit > 0 && limit > opts.Limit {
		limit = opts.Limit
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(table.Columns, "\t"))

	for i := 0; i < limit; i++ {
		cells := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			cells = append(cells, cellString(table, i, col))
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}

	return writer.Flush()
}

func cellString(t dataset.Table, row int, col string) string {
	v, ok := t.Cell(row, col)
	if !ok {
		return "-"
	}
	switch c := v.(type) {
	case nil:
		return "-"
	case string:
		return sanitizeInline(c)
	case float64:
		return fmt.Sprintf("%.4f", c)
	default:
		return fmt.Sprintf("%v", c)
	}
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
