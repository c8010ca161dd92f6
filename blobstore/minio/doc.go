// Package minio provides a blobstore.BlobStore backed by MinIO or any
// S3-compatible object store, for sharing persisted model state across
// machines.
package minio
