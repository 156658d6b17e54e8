package matchrun

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"track-matcher/core/database"
	"track-matcher/core/dataset"
	"track-matcher/core/matching"
	"track-matcher/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const libraryCSV = "track,artist,album,mediaid\n" +
	"Hello,Adele,25,m1\n" +
	"Yesterday,The Beatles,Help!,m2\n" +
	"Yellow,Coldplay,Parachutes,m3\n"

const curationCSV = "Track Name,Artist\n" +
	"Hello,Adele\n" +
	"Yellowe,Coldplay\n" +
	"Unknown Song,Nobody At All\n"

func testConfig() matching.Config {
	return matching.Config{
		MinScore:     0.85,
		TitleWeight:  0.35,
		ArtistWeight: 0.45,
		NgramWeight:  0.20,
		AlbumWeight:  0.20,
		Concurrency:  2,
	}
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestServiceRun(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFixture(t, dir, "library.csv", libraryCSV)
	curPath := writeFixture(t, dir, "playlist.csv", curationCSV)

	svc := NewService(nil, testConfig(), nil, nil)
	results, err := svc.Run(context.Background(), RunRequest{
		Library:   libPath,
		Curations: []string{curPath},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	sum := results[0].Summary
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Matched)
	assert.Equal(t, 1, sum.Unmatched)

	matched, err := dataset.ReadFile(results[0].MatchedPath)
	require.NoError(t, err)
	assert.Equal(t, MatchedColumns, matched.Headers)
	require.Equal(t, 2, matched.Len())

	// Exact hit passes the library fields and mediaid through.
	assert.Equal(t, "Hello", matched.Rows[0]["track"])
	assert.Equal(t, "m1", matched.Rows[0]["mediaid"])
	assert.Equal(t, "exact", matched.Rows[0]["match_type"])
	assert.Equal(t, "1.000", matched.Rows[0]["ratio_title"])

	// Fuzzy hit keeps the original curation spelling in the input columns.
	assert.Equal(t, "Yellowe", matched.Rows[1]["track"])
	assert.Equal(t, "Yellow", matched.Rows[1]["matched_track"])
	assert.Equal(t, "fuzzy", matched.Rows[1]["match_type"])

	unmatched, err := dataset.ReadFile(results[0].UnmatchedPath)
	require.NoError(t, err)
	assert.Equal(t, UnmatchedColumns, unmatched.Headers)
	require.Equal(t, 1, unmatched.Len())
	assert.Equal(t, "Unknown Song", unmatched.Rows[0]["track"])
	assert.Equal(t, "Nobody At All", unmatched.Rows[0]["artist"])
}

func TestServiceRunOutDir(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	libPath := writeFixture(t, dir, "library.csv", libraryCSV)
	curPath := writeFixture(t, dir, "playlist.csv", curationCSV)

	svc := NewService(nil, testConfig(), nil, nil)
	results, err := svc.Run(context.Background(), RunRequest{
		Library:   libPath,
		Curations: []string{curPath},
		OutDir:    outDir,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(outDir, "playlist_matched.csv"), results[0].MatchedPath)
	assert.FileExists(t, results[0].MatchedPath)
	assert.FileExists(t, results[0].UnmatchedPath)
}

func TestServiceRunKeepsPartialResults(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFixture(t, dir, "library.csv", libraryCSV)
	firstPath := writeFixture(t, dir, "first.csv", curationCSV)
	// Second curation file lacks an artist column, a fatal dataset error.
	brokenPath := writeFixture(t, dir, "broken.csv", "track,album\nHello,25\n")

	svc := NewService(nil, testConfig(), nil, nil)
	results, err := svc.Run(context.Background(), RunRequest{
		Library:   libPath,
		Curations: []string{firstPath, brokenPath},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	// The first dataset completed and its files survive the failure.
	require.Len(t, results, 1)
	assert.FileExists(t, results[0].MatchedPath)
	assert.FileExists(t, results[0].UnmatchedPath)
}

func TestServiceRunLibraryErrors(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, testConfig(), nil, nil)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := svc.Run(context.Background(), RunRequest{
			Library: filepath.Join(dir, "nope.csv"),
		})
		require.Error(t, err)
	})

	t.Run("NoUsableRows", func(t *testing.T) {
		libPath := writeFixture(t, dir, "empty.csv", "track,artist\n")
		_, err := svc.Run(context.Background(), RunRequest{Library: libPath})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no usable rows")
	})

	t.Run("MissingColumn", func(t *testing.T) {
		libPath := writeFixture(t, dir, "noartist.csv", "track,album\nHello,25\n")
		_, err := svc.Run(context.Background(), RunRequest{Library: libPath})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "artist column")
	})
}

func TestServiceRunRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFixture(t, dir, "library.csv", libraryCSV)
	curPath := writeFixture(t, dir, "playlist.csv", curationCSV)

	db, err := database.Connect(database.Config{Path: filepath.Join(dir, "runs.db")})
	require.NoError(t, err)
	store := database.NewRunStore(db)

	svc := NewService(nil, testConfig(), nil, store)
	_, err = svc.Run(context.Background(), RunRequest{
		Library:   libPath,
		Curations: []string{curPath},
	})
	require.NoError(t, err)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "library", runs[0].Library)
	assert.Equal(t, "playlist", runs[0].Curation)
	assert.Equal(t, 3, runs[0].Total)
	assert.Equal(t, 2, runs[0].Matched)
	assert.Equal(t, 0.85, runs[0].MinScore)
}

func TestServiceLoadDatasetFromStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datasets").Return(true, nil)
	client.On("GetObject", mock.Anything, "datasets", "in/library.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(libraryCSV)), nil)

	svc := NewService(client, testConfig(), nil, nil)
	ds, err := svc.LoadDataset(context.Background(), "s3://datasets/in/library.csv")
	require.NoError(t, err)
	assert.Equal(t, "library", ds.Name)
	assert.Equal(t, 3, ds.Len())
	client.AssertExpectations(t)
}

func TestServiceLoadDatasetStorageErrors(t *testing.T) {
	t.Run("NotConfigured", func(t *testing.T) {
		svc := NewService(nil, testConfig(), nil, nil)
		_, err := svc.LoadDataset(context.Background(), "s3://datasets/in/library.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage is not configured")
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datasets").Return(false, nil)
		svc := NewService(client, testConfig(), nil, nil)
		_, err := svc.LoadDataset(context.Background(), "s3://datasets/in/library.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})
}

func TestServiceWriteDatasetToStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "datasets", "out/playlist_matched.csv",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(client, testConfig(), nil, nil)
	ds := &dataset.Dataset{
		Name:    "playlist_matched",
		Headers: []string{"track"},
		Rows:    []dataset.Row{{"track": "Hello"}},
	}
	err := svc.writeDataset(context.Background(), ds, "s3://datasets/out/playlist_matched.csv")
	require.NoError(t, err)
	client.AssertExpectations(t)
}
