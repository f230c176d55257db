package fixture

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"

	"github.com/foomo/mockserver/pkg/metrics"

	// Import blob drivers for the supported schemes
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

const seedConcurrency = 4

// supportedBlobSchemes lists the URL schemes supported for fixture seeding
var supportedBlobSchemes = []string{"gs://", "s3://", "azblob://"}

// ValidBlobScheme checks if the bucket URL has a supported scheme
func ValidBlobScheme(bucketURL string) bool {
	for _, scheme := range supportedBlobSchemes {
		if strings.HasPrefix(bucketURL, scheme) {
			return true
		}
	}
	return false
}

// BlobProvider returns a human-readable provider name from the URL scheme
func BlobProvider(bucketURL string) string {
	switch {
	case strings.HasPrefix(bucketURL, "gs://"):
		return "Google Cloud Storage"
	case strings.HasPrefix(bucketURL, "s3://"):
		return "AWS S3"
	case strings.HasPrefix(bucketURL, "azblob://"):
		return "Azure Blob Storage"
	default:
		return "unknown"
	}
}

// SeedFromBucket downloads every object below prefix into the fixture
// root. Files that already exist locally are kept as they are, so a test
// suite can overwrite individual fixtures between runs.
func (s *Store) SeedFromBucket(ctx context.Context, bucketURL, prefix string) (err error) {
	bucket, errOpen := blob.OpenBucket(ctx, bucketURL)
	if errOpen != nil {
		return errors.Wrap(errOpen, "failed to open fixture bucket")
	}
	defer func() {
		err = multierr.Append(err, bucket.Close())
	}()

	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return s.seedFromBucket(ctx, bucket, prefix)
}

// SeedFromOpenBucket seeds from an already opened bucket. This is useful
// for testing with memblob.
func (s *Store) SeedFromOpenBucket(ctx context.Context, bucket *blob.Bucket, prefix string) error {
	return s.seedFromBucket(ctx, bucket, prefix)
}

func (s *Store) seedFromBucket(ctx context.Context, bucket *blob.Bucket, prefix string) error {
	l := s.l.Named("seed").With(zap.String("run_id", uuid.New().String()))

	keys, err := listKeys(ctx, bucket, prefix)
	if err != nil {
		return errors.Wrap(err, "failed to list fixture bucket")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			name := strings.TrimPrefix(key, prefix)
			if name == "" || strings.HasSuffix(name, "/") {
				return nil
			}
			if !filepath.IsLocal(filepath.FromSlash(name)) {
				l.Warn("skipping fixture key outside the fixture root", zap.String("key", key))
				return nil
			}
			target := filepath.Join(s.root, filepath.FromSlash(name))
			if _, errStat := os.Stat(target); errStat == nil {
				metrics.FixtureSeedCounter.WithLabelValues("skipped").Inc()
				l.Debug("fixture exists, skipping", zap.String("name", name))
				return nil
			}
			data, errRead := bucket.ReadAll(ctx, key)
			if errRead != nil {
				return errors.Wrapf(errRead, "failed to read fixture %q", key)
			}
			if errMkdir := os.MkdirAll(filepath.Dir(target), 0755); errMkdir != nil {
				return errors.Wrapf(errMkdir, "failed to create directory for fixture %q", key)
			}
			if errWrite := os.WriteFile(target, data, 0644); errWrite != nil {
				return errors.Wrapf(errWrite, "failed to write fixture %q", key)
			}
			metrics.FixtureSeedCounter.WithLabelValues("seeded").Inc()
			l.Info("seeded fixture", zap.String("name", name), zap.Int("size", len(data)))
			return nil
		})
	}
	return g.Wait()
}

func listKeys(ctx context.Context, bucket *blob.Bucket, prefix string) ([]string, error) {
	iter := bucket.List(&blob.ListOptions{
		Prefix: prefix,
	})
	var keys []string
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
