package publish

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/log"
)

type S3Uploader struct {
	client *s3.Client
	bucket string
}

func NewS3Uploader(i *do.Injector) (Uploader, error) {
	return &S3Uploader{
		client: do.MustInvoke[*s3.Client](i),
		bucket: do.MustInvokeNamed[string](i, "bucket"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).WithGroup("publish").Info("uploading to s3",
		"name", params.Name, "content-type", params.ContentType, "bucket", u.bucket)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(params.Name),
		ContentType:  aws.String(params.ContentType),
		Body:         bytes.NewReader(params.Data),
		Metadata:     params.Metadata,
		StorageClass: s3types.StorageClassIntelligentTiering,
	})
	return err
}

type CloudFrontInvalidator struct {
	client       *cloudfront.Client
	distribution string
}

func NewCloudFrontInvalidator(i *do.Injector) (Invalidator, error) {
	return &CloudFrontInvalidator{
		client:       do.MustInvoke[*cloudfront.Client](i),
		distribution: do.MustInvokeNamed[string](i, "distribution"),
	}, nil
}

func (c *CloudFrontInvalidator) Invalidate(ctx context.Context, paths []string) error {
	log.FromContextOrDiscard(ctx).WithGroup("publish").Info("invalidating paths in cloudfront",
		"paths", paths, "distribution", c.distribution)

	_, err := c.client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(c.distribution),
		InvalidationBatch: &cftypes.InvalidationBatch{
			CallerReference: aws.String(time.Now().UTC().Format("20060102150405")),
			Paths: &cftypes.Paths{
				Quantity: aws.Int32(int32(len(paths))),
				Items:    paths,
			},
		},
	})
	return err
}
