package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client the store needs.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// Presigner issues time-limited GET URLs.
type Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store keeps preview bytes in a bucket and resolves references to
// presigned URLs.
type S3Store struct {
	api       S3API
	presigner Presigner
	bucket    string
	urlTTL    time.Duration
}

func NewS3Store(api S3API, presigner Presigner, bucket string) *S3Store {
	return &S3Store{api: api, presigner: presigner, bucket: bucket, urlTTL: 15 * time.Minute}
}

// NewS3StoreFromEnv builds a store from the default AWS credential chain.
// A non-empty endpoint switches to path-style addressing (MinIO, LocalStack).
func NewS3StoreFromEnv(ctx context.Context, region, endpoint, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Store(client, s3.NewPresignClient(client), bucket), nil
}

func (s *S3Store) Put(ctx context.Context, key string, u Upload) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(u.Data),
		ContentType:   aws.String(u.ContentType),
		ContentLength: aws.Int64(int64(len(u.Data))),
		Metadata:      map[string]string{"file-name": u.FileName},
	})
	if err != nil {
		return fmt.Errorf("failed to put preview object: %w", err)
	}
	return nil
}

func (s *S3Store) Open(ctx context.Context, key string) (Object, error) {
	head, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return Object{}, ErrObjectNotFound
		}
		return Object{}, fmt.Errorf("failed to head preview object: %w", err)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.urlTTL))
	if err != nil {
		return Object{}, fmt.Errorf("failed to presign preview object: %w", err)
	}

	return Object{
		ContentType: aws.ToString(head.ContentType),
		FileName:    head.Metadata["file-name"],
		RedirectURL: req.URL,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, k := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(k)}
	}
	out, err := s.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to delete preview objects: %w", err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("failed to delete %d preview objects: %s", len(out.Errors), aws.ToString(out.Errors[0].Message))
	}
	return nil
}
