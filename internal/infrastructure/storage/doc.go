// Package storage provides the sinks that persist output lines of the
// periodic CRM jobs: an append-only local file per stream, or one object per
// line in an S3-compatible bucket.
package storage
