// Package blobstore abstracts where persisted imputation state lives.
//
// A snapshot produced by the engine is a single immutable blob; the store
// only needs atomic Put, random-access Open, Delete and List. Built-in
// implementations cover the local file system and memory (for tests);
// the minio subpackage covers S3-compatible object storage.
package blobstore
