package recordstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"photos-go/internal/photos"
)

const defaultS3Timeout = 30 * time.Second

// S3Options configures an S3Store. Empty credentials fall back to the
// default AWS credential chain; Endpoint and PathStyle allow MinIO and
// other S3-compatible servers.
type S3Options struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
	Timeout   time.Duration
}

// S3Store keeps each record as the object <prefix>/<name>.dat, stamped
// with a revision in the object metadata. S3 object writes replace the
// whole object, so PutRecord is atomic.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	timeout  time.Duration
}

// NewS3Store builds an S3 client from opts.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 store requires a bucket", photos.ErrInvalidArgument)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultS3Timeout
	}

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   opts.Bucket,
		prefix:   trimPrefix(opts.Prefix),
		timeout:  timeout,
	}, nil
}

func trimPrefix(prefix string) string {
	return strings.Trim(prefix, "/")
}

func (s *S3Store) key(name string) string {
	return path.Join(s.prefix, name+recordExt)
}

func (s *S3Store) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *S3Store) PutRecord(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return photos.IOFailure("reading record", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	ctx, cancel := s.withTimeout()
	defer cancel()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		Metadata:      map[string]string{"revision": uuid.NewString()},
	})
	if err != nil {
		return photos.IOFailure("uploading record", err)
	}
	return nil
}

func (s *S3Store) GetRecord(name string, w io.Writer) error {
	ctx, cancel := s.withTimeout()
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("record %q: %w", name, photos.ErrNotFound)
		}
		return photos.IOFailure("downloading record", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return photos.IOFailure("reading record", err)
	}
	return nil
}

// DeleteRecord relies on S3 treating deletes of missing keys as success.
func (s *S3Store) DeleteRecord(name string) error {
	ctx, cancel := s.withTimeout()
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil && !isNotFound(err) {
		return photos.IOFailure("deleting record", err)
	}
	return nil
}

func (s *S3Store) ListRecords() ([]string, error) {
	ctx, cancel := s.withTimeout()
	defer cancel()

	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}

	var names []string
	pager := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(listPrefix),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, photos.IOFailure("listing records", err)
		}
		for _, obj := range page.Contents {
			rel := strings.TrimPrefix(aws.ToString(obj.Key), listPrefix)
			if strings.Contains(rel, "/") {
				continue
			}
			if name, ok := strings.CutSuffix(rel, recordExt); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// ValidateSetup checks that the bucket exists and is reachable with the
// configured credentials.
func (s *S3Store) ValidateSetup() error {
	ctx, cancel := s.withTimeout()
	defer cancel()

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return photos.IOFailure("checking bucket "+s.bucket, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

var _ photos.RecordStore = (*S3Store)(nil)
