// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so datasets can be read from and results
// written to AWS S3 or self-hosted MinIO instances, referenced by
// "s3://bucket/key" paths.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves a dataset as a stream.
//   - PutObject: Uploads a result file (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "datasets")
package storage
