package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

type fakeS3 struct {
	s3iface.S3API
	err error
}

func (f *fakeS3) HeadBucket(*awss3.HeadBucketInput) (*awss3.HeadBucketOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &awss3.HeadBucketOutput{}, nil
}

func TestBucketExists(t *testing.T) {
	p := NewProberWithAPI(&fakeS3{})
	if err := p.BucketExists("demo-bucket"); err != nil {
		t.Fatalf("expected bucket to exist, got %v", err)
	}
}

func TestBucketExistsNotFound(t *testing.T) {
	p := NewProberWithAPI(&fakeS3{err: awserr.New("NotFound", "not found", nil)})
	if err := p.BucketExists("missing"); err != ErrBucketNotFound {
		t.Fatalf("expected ErrBucketNotFound, got %v", err)
	}
}

func TestBucketExistsOtherError(t *testing.T) {
	cause := errors.New("no credentials")
	p := NewProberWithAPI(&fakeS3{err: cause})
	if err := p.BucketExists("demo-bucket"); err != cause {
		t.Fatalf("expected original error, got %v", err)
	}
}
