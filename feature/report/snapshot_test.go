package report

import (
	"strings"
	"testing"

	"track-matcher/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read("snapshot", strings.NewReader(csv))
	require.NoError(t, err)
	return ds
}

func TestLoadSnapshotHours(t *testing.T) {
	ds := loadFixture(t,
		"Station_Name,Song Count,Total_Hours\n"+
			"Jazz FM,120,10.5\n"+
			"Rock One,80,6.25\n")

	snap, err := LoadSnapshot(ds)
	require.NoError(t, err)
	assert.Equal(t, Entry{Songs: 120, Hours: 10.5}, snap["Jazz FM"])
	assert.Equal(t, Entry{Songs: 80, Hours: 6.25}, snap["Rock One"])
}

func TestLoadSnapshotSecondsConversion(t *testing.T) {
	ds := loadFixture(t,
		"station,songs,total_seconds\n"+
			"Jazz FM,10,7200\n")

	snap, err := LoadSnapshot(ds)
	require.NoError(t, err)
	assert.Equal(t, Entry{Songs: 10, Hours: 2.0}, snap["Jazz FM"])
}

func TestLoadSnapshotAggregatesDuplicates(t *testing.T) {
	ds := loadFixture(t,
		"station,songs,hours\n"+
			"Jazz FM,10,1.5\n"+
			"Jazz FM,5,0.5\n"+
			",3,1.0\n")

	snap, err := LoadSnapshot(ds)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, Entry{Songs: 15, Hours: 2.0}, snap["Jazz FM"])
}

func TestLoadSnapshotParenthesizedHeader(t *testing.T) {
	ds := loadFixture(t,
		"Name,Song Count,Station Duration (in hours)\n"+
			"Jazz FM,10,4.0\n")

	snap, err := LoadSnapshot(ds)
	require.NoError(t, err)
	assert.Equal(t, Entry{Songs: 10, Hours: 4.0}, snap["Jazz FM"])
}

func TestLoadSnapshotErrors(t *testing.T) {
	t.Run("NoStation", func(t *testing.T) {
		_, err := LoadSnapshot(loadFixture(t, "songs,hours\n1,1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "station column")
	})

	t.Run("NoDuration", func(t *testing.T) {
		_, err := LoadSnapshot(loadFixture(t, "station,songs\nJazz FM,1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hours or a seconds column")
	})
}

func TestDiff(t *testing.T) {
	prev := Snapshot{
		"Jazz FM":   {Songs: 10, Hours: 2.0},
		"Rock One":  {Songs: 5, Hours: 1.0},
		"Gone Away": {Songs: 3, Hours: 0.5},
	}
	curr := Snapshot{
		"Jazz FM":  {Songs: 12, Hours: 2.5},
		"Rock One": {Songs: 5, Hours: 1.0},
		"Brand":    {Songs: 1, Hours: 0.25},
	}

	lines := Diff(prev, curr)
	require.Equal(t, []string{
		"[UPDATE] Brand: 0 songs, 0.00 hrs → 1 songs, 0.25 hrs (+0.25 hrs)",
		"[UPDATE] Gone Away: 3 songs, 0.50 hrs → 0 songs, 0.00 hrs (+-0.50 hrs)",
		"[UPDATE] Jazz FM: 10 songs, 2.00 hrs → 12 songs, 2.50 hrs (+0.50 hrs)",
	}, lines)
}

func TestDiffNoChanges(t *testing.T) {
	snap := Snapshot{"Jazz FM": {Songs: 10, Hours: 2.0}}
	assert.Empty(t, Diff(snap, snap))

	// Sub-cent hour drift rounds away and is not a change.
	drifted := Snapshot{"Jazz FM": {Songs: 10, Hours: 2.001}}
	assert.Empty(t, Diff(snap, drifted))
}
