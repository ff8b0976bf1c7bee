package objectstore

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"io"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// biochemObjectPrefix/templateObjectPrefix namespace gem-flux-mcp's two
// source kinds within a single shared bucket.
const (
	biochemObjectPrefix  = "biochem/"
	templateObjectPrefix = "templates/"
)

// MinIOSource implements biochem.Source and template.Source against a
// configured MinIO bucket, for deployments that keep reference data out of
// the container image. Connectivity is verified once at construction time
// so startup fails fast rather than on first tool call.
type MinIOSource struct {
	client *minio.Client
	bucket string
	logger logging.Logger
}

// NewMinIOSource connects to cfg's endpoint and verifies the bucket exists.
func NewMinIOSource(cfg config.MinIOConfig, logger logging.Logger) (*MinIOSource, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectStoreError, "failed to construct minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if exists, err := client.BucketExists(ctx, cfg.Bucket); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectStoreError, "failed to verify minio bucket")
	} else if !exists {
		return nil, apperrors.New(apperrors.CodeObjectStoreError, "minio bucket does not exist").WithDetail(cfg.Bucket)
	}

	return &MinIOSource{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *MinIOSource) OpenCompounds(ctx context.Context) (io.ReadCloser, error) {
	return s.getObject(ctx, biochemObjectPrefix+"compounds.tsv")
}

func (s *MinIOSource) OpenReactions(ctx context.Context) (io.ReadCloser, error) {
	return s.getObject(ctx, biochemObjectPrefix+"reactions.tsv")
}

func (s *MinIOSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.getObject(ctx, templateObjectPrefix+name)
}

func (s *MinIOSource) getObject(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectStoreError, "failed to fetch minio object").WithDetail(key)
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeObjectStoreError, "minio object not found").WithDetail(key)
	}
	s.logger.Debug("fetched object from minio", logging.String("key", key))
	return obj, nil
}
