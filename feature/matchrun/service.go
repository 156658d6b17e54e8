package matchrun

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"track-matcher/core/database"
	"track-matcher/core/dataset"
	"track-matcher/core/matching"
	"track-matcher/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service orchestrates matching runs over CSV datasets.
type Service struct {
	store  storage.Client
	cfg    matching.Config
	logger *zap.Logger
	runs   *database.RunStore
}

// NewService creates a new matchrun service. The storage client and the run
// store are optional: without storage only local paths work, without the
// store no history is recorded.
func NewService(store storage.Client, cfg matching.Config, logger *zap.Logger, runs *database.RunStore) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		cfg:    cfg,
		logger: logger,
		runs:   runs,
	}
}

// RunRequest describes one matching run: a library dataset matched against
// one or more curation datasets, with result files written next to the
// curation files or into OutDir when set.
type RunRequest struct {
	Library   string
	Curations []string
	OutDir    string
	Progress  matching.ProgressFunc
}

// DatasetResult is the per-curation outcome of a run.
type DatasetResult struct {
	Curation      string           `json:"curation"`
	Summary       matching.Summary `json:"summary"`
	MatchedPath   string           `json:"matched_path"`
	UnmatchedPath string           `json:"unmatched_path"`
}

// Run executes the full pipeline. The library index is built once and reused
// for every curation dataset. Result files already written for earlier
// datasets are kept when a later dataset fails; the partial results are
// returned alongside the error.
func (s *Service) Run(ctx context.Context, req RunRequest) ([]DatasetResult, error) {
	idx, libName, err := s.LoadLibrary(ctx, req.Library)
	if err != nil {
		return nil, err
	}

	engine := matching.NewEngine(s.cfg, s.logger)
	var results []DatasetResult
	for _, path := range req.Curations {
		res, err := s.runDataset(ctx, engine, idx, libName, path, req)
		if err != nil {
			return results, fmt.Errorf("curation %s: %w", path, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

// LoadLibrary loads the library dataset and builds the shared index.
func (s *Service) LoadLibrary(ctx context.Context, path string) (*matching.Index, string, error) {
	ds, err := s.LoadDataset(ctx, path)
	if err != nil {
		return nil, "", err
	}
	records, _, err := s.Records(ds)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", fmt.Errorf("library %s has no usable rows", ds.Name)
	}
	idx := matching.BuildIndex(records, s.cfg)
	s.logger.Info("Library index built",
		zap.String("library", ds.Name),
		zap.Int("records", idx.Size()),
	)
	return idx, ds.Name, nil
}

// LoadDataset reads a CSV from a local path or an s3://bucket/key reference.
func (s *Service) LoadDataset(ctx context.Context, path string) (*dataset.Dataset, error) {
	if !storage.IsObjectPath(path) {
		return dataset.ReadFile(path)
	}
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured, cannot read %s", path)
	}
	bucket, object, err := storage.ParseObjectPath(path)
	if err != nil {
		return nil, err
	}
	ok, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !ok {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}
	obj, err := s.store.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	defer obj.Close()
	return dataset.Read(dataset.BaseName(object), obj)
}

// Records detects the canonical columns of a dataset and converts its rows
// to matching records.
func (s *Service) Records(ds *dataset.Dataset) ([]*matching.Record, dataset.Columns, error) {
	cols, err := dataset.Detect(ds)
	if err != nil {
		return nil, dataset.Columns{}, err
	}
	s.logger.Info("Columns detected",
		zap.String("dataset", ds.Name),
		zap.String("track", cols.Track),
		zap.String("artist", cols.Artist),
		zap.String("album", cols.Album),
	)

	records := make([]*matching.Record, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		records = append(records, matching.NewRecord(
			row,
			row[cols.Track],
			row[cols.Artist],
			row[cols.Album],
			row[cols.MediaID],
			s.cfg.AggressiveTrim,
		))
	}
	return records, cols, nil
}

// runDataset matches one curation dataset and writes its result files.
func (s *Service) runDataset(ctx context.Context, engine *matching.Engine, idx *matching.Index, libName, path string, req RunRequest) (*DatasetResult, error) {
	ds, err := s.LoadDataset(ctx, path)
	if err != nil {
		return nil, err
	}
	rows, _, err := s.Records(ds)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	res, err := engine.Run(ctx, rows, idx, req.Progress)
	if err != nil {
		return nil, err
	}

	matched, unmatched := BuildOutputs(ds.Name, res)
	matchedPath := s.outputPath(path, req.OutDir, ds.Name+"_matched.csv")
	unmatchedPath := s.outputPath(path, req.OutDir, ds.Name+"_not_found.csv")
	if err := s.writeDataset(ctx, matched, matchedPath); err != nil {
		return nil, err
	}
	if err := s.writeDataset(ctx, unmatched, unmatchedPath); err != nil {
		return nil, err
	}

	s.logger.Info("Curation dataset matched",
		zap.String("curation", ds.Name),
		zap.Int("total", res.Summary.Total),
		zap.Int("matched", res.Summary.Matched),
		zap.Int("unmatched", res.Summary.Unmatched),
		zap.Int("failed", res.Summary.Failed),
		zap.Duration("elapsed", res.Summary.Elapsed),
	)
	s.recordRun(ctx, libName, ds.Name, started, res.Summary)

	return &DatasetResult{
		Curation:      ds.Name,
		Summary:       res.Summary,
		MatchedPath:   matchedPath,
		UnmatchedPath: unmatchedPath,
	}, nil
}

// outputPath places a result file in OutDir when set, otherwise next to the
// curation input. An s3:// OutDir yields object paths.
func (s *Service) outputPath(inputPath, outDir, name string) string {
	if outDir != "" {
		if storage.IsObjectPath(outDir) {
			return fmt.Sprintf("%s/%s", outDir, name)
		}
		return filepath.Join(outDir, name)
	}
	if storage.IsObjectPath(inputPath) {
		// Derived objects land next to the input object.
		dir := inputPath[:len(inputPath)-len(filepath.Base(inputPath))]
		return dir + name
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

// writeDataset writes a result dataset to disk or object storage.
func (s *Service) writeDataset(ctx context.Context, ds *dataset.Dataset, path string) error {
	if !storage.IsObjectPath(path) {
		return ds.WriteFile(path)
	}
	if s.store == nil {
		return fmt.Errorf("storage is not configured, cannot write %s", path)
	}
	bucket, object, err := storage.ParseObjectPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := ds.Write(&buf); err != nil {
		return err
	}
	_, err = s.store.PutObject(ctx, bucket, object, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", path, err)
	}
	return nil
}

// recordRun stores a history row when the database is configured. History is
// best-effort; failures are logged and never fail the run.
func (s *Service) recordRun(ctx context.Context, library, curation string, started time.Time, sum matching.Summary) {
	if s.runs == nil {
		return
	}
	err := s.runs.Record(ctx, &database.MatchRun{
		Library:     library,
		Curation:    curation,
		Total:       sum.Total,
		Matched:     sum.Matched,
		Unmatched:   sum.Unmatched,
		Failed:      sum.Failed,
		MinScore:    s.cfg.MinScore,
		Aggressive:  s.cfg.AggressiveTrim,
		DurationMS:  sum.Elapsed.Milliseconds(),
		StartedAt:   started,
		CompletedAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("Failed to record run history", zap.Error(err))
	}
}
