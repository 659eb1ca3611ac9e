package s3

import "errors"

var ErrBucketNotFound = errors.New("bucket not found")

// Prober answers whether a bucket exists and is reachable with the current
// credentials. The stage setup uses it before emitting stage DDL so a typo in
// the bucket name fails fast instead of surfacing later inside Snowflake.
type Prober interface {
	// BucketExists returns ErrBucketNotFound when the bucket is missing and
	// other errors unchanged e.g. credential or network failures.
	BucketExists(bucket string) error
}
