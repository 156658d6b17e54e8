package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLenientRows(t *testing.T) {
	in := strings.NewReader(
		"Track Name,Artist,Album\n" +
			"Hello,Adele,25\n" +
			"Yesterday,The Beatles\n" +
			"Yellow,Coldplay,Parachutes,extra\n" +
			"Empty,,\n")

	ds, err := Read("curation", in)
	require.NoError(t, err)

	assert.Equal(t, "curation", ds.Name)
	assert.Equal(t, []string{"Track Name", "Artist", "Album"}, ds.Headers)
	require.Equal(t, 4, ds.Len())

	// Short rows pad with empty strings, long rows drop the surplus.
	assert.Equal(t, Row{"Track Name": "Yesterday", "Artist": "The Beatles", "Album": ""}, ds.Rows[1])
	assert.Equal(t, Row{"Track Name": "Yellow", "Artist": "Coldplay", "Album": "Parachutes"}, ds.Rows[2])
	assert.Equal(t, "", ds.Rows[3]["Artist"])
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read("empty", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestWriteRoundTrip(t *testing.T) {
	ds := &Dataset{
		Name:    "library",
		Headers: []string{"track", "artist", "mediaid"},
		Rows: []Row{
			{"track": "Hello", "artist": "Adele", "mediaid": "m1"},
			{"track": "One, Two", "artist": "", "mediaid": "m2"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ds.Write(&buf))

	back, err := Read("library", &buf)
	require.NoError(t, err)
	assert.Equal(t, ds.Headers, back.Headers)
	assert.Equal(t, ds.Rows, back.Rows)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")

	ds := &Dataset{
		Name:    "songs",
		Headers: []string{"track", "artist"},
		Rows:    []Row{{"track": "Clocks", "artist": "Coldplay"}},
	}
	require.NoError(t, ds.WriteFile(path))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "songs", back.Name)
	assert.Equal(t, ds.Rows, back.Rows)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "playlist", BaseName("/data/in/playlist.csv"))
	assert.Equal(t, "library", BaseName("library.csv"))
	assert.Equal(t, "raw", BaseName("raw"))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Columns
		wantErr bool
	}{
		{
			name:    "exact lowercase",
			headers: []string{"track", "artist", "album", "mediaid"},
			want:    Columns{Track: "track", Artist: "artist", Album: "album", MediaID: "mediaid"},
		},
		{
			name:    "exact beats substring",
			headers: []string{"track_title_notes", "song", "artist"},
			want:    Columns{Track: "song", Artist: "artist"},
		},
		{
			name:    "substring fallback",
			headers: []string{"Track Name", "Artist Name", "Album Title"},
			want:    Columns{Track: "Track Name", Artist: "Artist Name", Album: "Album Title"},
		},
		{
			name:    "album optional",
			headers: []string{"song_name", "artists"},
			want:    Columns{Track: "song_name", Artist: "artists"},
		},
		{
			name:    "missing artist is fatal",
			headers: []string{"track", "album"},
			wantErr: true,
		},
		{
			name:    "missing track is fatal",
			headers: []string{"artist", "album"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &Dataset{Name: "t", Headers: tt.headers}
			got, err := Detect(ds)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
