package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"soldash/internal/observability"
)

// Snapshot bundles every dataset of one render cycle plus the recoverable
// warnings collected while loading them. A snapshot is immutable once built.
type Snapshot struct {
	Metadata Metadata
	Tables   map[string]Table
	Summary  SummaryStats
	Holders  map[string][]HolderRow
	Warnings []string
}

// Table returns the named table, or an empty one when it was never loaded.
func (s *Snapshot) Table(name string) Table {
	if t, ok := s.Tables[name]; ok {
		return t
	}
	return Table{}
}

// Loader reads the processed-data directory. Missing metadata is fatal for a
// render cycle; any single missing or corrupt dataset degrades to an empty
// table with a warning.
type Loader struct {
	dir      string
	metaFile string
	logger   zerolog.Logger
}

// NewLoader constructs a loader over the given snapshot directory.
func NewLoader(dir, metadataFile string, logger zerolog.Logger) *Loader {
	return &Loader{
		dir:      dir,
		metaFile: metadataFile,
		logger:   logger.With().Str("component", "loader").Logger(),
	}
}

// LoadMetadata reads the snapshot metadata record. Errors here halt rendering.
func (l *Loader) LoadMetadata() (Metadata, error) {
	path := filepath.Join(l.dir, l.metaFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read metadata %s: %w", path, err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	if len(meta.DataFiles) == 0 {
		return Metadata{}, fmt.Errorf("metadata %s lists no data files", path)
	}
	return meta, nil
}

// Load performs one full, sequential snapshot load. It fails only when the
// metadata record itself is unavailable.
func (l *Loader) Load() (*Snapshot, error) {
	start := time.Now()

	meta, err := l.LoadMetadata()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Metadata: meta,
		Tables:   make(map[string]Table, len(TableDatasets)),
		Summary:  SummaryStats{},
		Holders:  map[string][]HolderRow{},
	}

	for _, name := range TableDatasets {
		table, warn := l.loadTable(meta, name)
		snap.Tables[name] = table
		if warn != "" {
			snap.Warnings = append(snap.Warnings, warn)
		}
	}

	if summary, warn := l.loadSummary(meta); warn != "" {
		snap.Warnings = append(snap.Warnings, warn)
	} else {
		snap.Summary = summary
	}

	if holders, warn := l.loadHolders(meta); warn != "" {
		snap.Warnings = append(snap.Warnings, warn)
	} else {
		snap.Holders = holders
	}

	observability.SnapshotLoadDuration.Observe(time.Since(start).Seconds())
	observability.SnapshotWarnings.Set(float64(len(snap.Warnings)))
	if !meta.LastUpdated.IsZero() {
		observability.SnapshotAge.Set(time.Since(meta.LastUpdated).Seconds())
	}

	l.logger.Debug().
		Int("tables", len(snap.Tables)).
		Int("warnings", len(snap.Warnings)).
		Time("last_updated", meta.LastUpdated).
		Msg("snapshot loaded")

	return snap, nil
}

func (l *Loader) loadTable(meta Metadata, name string) (Table, string) {
	raw, warn := l.readDataset(meta, name)
	if warn != "" {
		return Table{}, warn
	}

	var rows []Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return Table{}, l.warnf(name, "decode failed: %v", err)
	}

	observability.DatasetLoadsTotal.WithLabelValues(name, "ok").Inc()
	return FromRows(rows), ""
}

func (l *Loader) loadSummary(meta Metadata) (SummaryStats, string) {
	raw, warn := l.readDataset(meta, DatasetSummaryStats)
	if warn != "" {
		return SummaryStats{}, warn
	}

	var summary SummaryStats
	if err := json.Unmarshal(raw, &summary); err != nil {
		return SummaryStats{}, l.warnf(DatasetSummaryStats, "decode failed: %v", err)
	}

	observability.DatasetLoadsTotal.WithLabelValues(DatasetSummaryStats, "ok").Inc()
	return summary, ""
}

func (l *Loader) loadHolders(meta Metadata) (map[string][]HolderRow, string) {
	raw, warn := l.readDataset(meta, DatasetTopHolders)
	if warn != "" {
		return map[string][]HolderRow{}, warn
	}

	var holders map[string][]HolderRow
	if err := json.Unmarshal(raw, &holders); err != nil {
		return map[string][]HolderRow{}, l.warnf(DatasetTopHolders, "decode failed: %v", err)
	}

	observability.DatasetLoadsTotal.WithLabelValues(DatasetTopHolders, "ok").Inc()
	return holders, ""
}

// readDataset resolves a logical name via metadata and reads the file. A
// non-empty warning means the dataset degrades to empty.
func (l *Loader) readDataset(meta Metadata, name string) ([]byte, string) {
	filename, ok := meta.DataFiles[name]
	if !ok {
		return nil, l.warnf(name, "not listed in metadata")
	}

	raw, err := os.ReadFile(filepath.Join(l.dir, filename))
	if err != nil {
		return nil, l.warnf(name, "read failed: %v", err)
	}
	return raw, ""
}

func (l *Loader) warnf(name, format string, args ...any) string {
	observability.DatasetLoadsTotal.WithLabelValues(name, "error").Inc()
	msg := fmt.Sprintf("dataset %q unavailable: %s", name, fmt.Sprintf(format, args...))
	l.logger.Warn().Str("dataset", name).Msg(msg)
	return msg
}
