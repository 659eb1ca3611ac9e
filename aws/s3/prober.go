package s3

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func NewProber(region string) Prober {
	awsConfig := aws.NewConfig()
	awsConfig.Region = aws.String(region)
	sess := session.Must(session.NewSession(awsConfig))
	return &prober{api: s3.New(sess)}
}

func NewProberWithAPI(api s3iface.S3API) Prober {
	return &prober{api: api}
}

type prober struct {
	api s3iface.S3API
}

func (p *prober) BucketExists(bucket string) error {
	_, err := p.api.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok && (awsErr.Code() == s3.ErrCodeNoSuchBucket || awsErr.Code() == "NotFound") {
			return ErrBucketNotFound
		}
		return err
	}
	return nil
}
