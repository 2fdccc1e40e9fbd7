package config

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/fastic/blobstore"
	minioblob "github.com/hupe1980/fastic/blobstore/minio"
	s3blob "github.com/hupe1980/fastic/blobstore/s3"
)

// Open builds the blob store the source describes. Remote stores are wrapped
// in a local cache when CacheDir is set.
func (s Source) Open(ctx context.Context) (blobstore.BlobStore, error) {
	var store blobstore.BlobStore
	switch s.Type {
	case SourceMinio:
		client, err := minio.New(s.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
			Secure: s.Secure,
			Region: s.Region,
		})
		if err != nil {
			return nil, err
		}
		store = minioblob.NewStore(client, s.Bucket, s.Prefix)
	case SourceS3:
		var optFns []func(*awsconfig.LoadOptions) error
		if s.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(s.Region))
		}
		st, err := s3blob.New(ctx, s.Bucket, s.Prefix, optFns...)
		if err != nil {
			return nil, err
		}
		store = st
	default:
		return blobstore.NewLocalStore(s.Root), nil
	}

	if s.CacheDir != "" {
		return blobstore.NewCachingStore(store, blobstore.NewLocalStore(s.CacheDir)), nil
	}
	return store, nil
}
