package media

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectAPI is the subset of the MinIO client the bucket backend uses.
type objectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	getObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// minioClient adapts *minio.Client, whose GetObject is lazy, to objectAPI.
type minioClient struct {
	*minio.Client
}

func (c minioClient) getObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// BucketOptions configure an S3-compatible media backend.
type BucketOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Bucket stores files as objects in an S3-compatible bucket.
type Bucket struct {
	client objectAPI
	bucket string
}

// NewBucket connects to the object store and creates the bucket if it does
// not exist yet.
func NewBucket(ctx context.Context, opts BucketOptions) (*Bucket, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}
	return newBucket(ctx, minioClient{client}, opts.Bucket)
}

func newBucket(ctx context.Context, client objectAPI, bucket string) (*Bucket, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", bucket, err)
		}
	}
	return &Bucket{client: client, bucket: bucket}, nil
}

// Put uploads r as the object key.
func (b *Bucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	_, err := b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	return nil
}

// Open streams the object key.
func (b *Bucket) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	rc, err := b.client.getObject(ctx, b.bucket, key)
	if err != nil {
		return nil, mapObjectError(err)
	}
	return rc, nil
}

// Delete removes the object key.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return mapObjectError(err)
	}
	return nil
}

func mapObjectError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return fmt.Errorf("object store: %w", err)
}
