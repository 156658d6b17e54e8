package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"track-matcher/core/dataset"
	"track-matcher/core/utils"
)

// Header vocabularies for snapshot CSVs. Matching lowercases and drops
// everything but letters, digits and spaces, so "Station Duration (in hours)"
// resolves too.
var (
	stationColumns = []string{"station", "name", "station_name", "stationname"}
	songsColumns   = []string{"song_count", "songs", "songcount", "song count", "song_count_total"}
	hoursColumns   = []string{"total_hours", "hours", "station duration (in hours)", "stationdurationinhours"}
	secondsColumns = []string{"total_seconds", "seconds", "duration_seconds", "totalseconds"}
)

// Entry is the aggregated state of one station.
type Entry struct {
	Songs int
	Hours float64
}

// Snapshot maps station names to their aggregated entry.
type Snapshot map[string]Entry

// LoadSnapshot builds a snapshot from a dataset. Duplicate station rows are
// summed; a seconds column is converted to hours when no hours column exists.
func LoadSnapshot(ds *dataset.Dataset) (Snapshot, error) {
	stationCol, err := findColumn(ds.Headers, stationColumns)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: station column: %w", ds.Name, err)
	}
	songsCol, err := findColumn(ds.Headers, songsColumns)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: song count column: %w", ds.Name, err)
	}

	hoursCol, hoursErr := findColumn(ds.Headers, hoursColumns)
	secondsCol, secondsErr := findColumn(ds.Headers, secondsColumns)
	if hoursErr != nil && secondsErr != nil {
		return nil, fmt.Errorf("snapshot %s: need either an hours or a seconds column, have %v", ds.Name, ds.Headers)
	}

	snap := make(Snapshot)
	for _, row := range ds.Rows {
		station := strings.TrimSpace(row[stationCol])
		if station == "" {
			continue
		}
		hours := 0.0
		if hoursErr == nil {
			hours = utils.ToFloat(row[hoursCol])
		} else {
			hours = utils.ToFloat(row[secondsCol]) / 3600.0
		}
		entry := snap[station]
		entry.Songs += utils.ToInt(row[songsCol])
		entry.Hours += hours
		snap[station] = entry
	}
	return snap, nil
}

// Diff compares two snapshots and returns one update line per station whose
// song count or rounded hours changed, sorted by station name. Stations
// missing from one side count as zero.
func Diff(prev, curr Snapshot) []string {
	names := make(map[string]struct{}, len(prev)+len(curr))
	for name := range prev {
		names[name] = struct{}{}
	}
	for name := range curr {
		names[name] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var lines []string
	for _, name := range sorted {
		before := prev[name]
		after := curr[name]
		if before.Songs != after.Songs || round2(before.Hours) != round2(after.Hours) {
			lines = append(lines, formatUpdateLine(name, before, after))
		}
	}
	return lines
}

func formatUpdateLine(name string, before, after Entry) string {
	delta := round2(after.Hours) - round2(before.Hours)
	return fmt.Sprintf("[UPDATE] %s: %d songs, %.2f hrs → %d songs, %.2f hrs (+%.2f hrs)",
		name, before.Songs, round2(before.Hours), after.Songs, round2(after.Hours), delta)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// findColumn resolves a header against a candidate vocabulary, comparing the
// lowercased alphanumeric-and-space form of both sides.
func findColumn(headers, candidates []string) (string, error) {
	norm := make(map[string]string, len(headers))
	for _, h := range headers {
		norm[normHeader(h)] = h
	}
	for _, cand := range candidates {
		if original, ok := norm[normHeader(cand)]; ok {
			return original, nil
		}
	}
	return "", fmt.Errorf("no column matching %v in %v", candidates, headers)
}

func normHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
