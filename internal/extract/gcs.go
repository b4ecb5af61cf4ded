package extract

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/retailworks/retailpulse/internal/record"
)

// BucketSource reads raw batches from a GCS bucket under a prefix.
type BucketSource struct {
	log    *zap.Logger
	client *storage.Client
	bucket string
	prefix string
}

func NewBucketSource(ctx context.Context, bucket, prefix string, log *zap.Logger) (*BucketSource, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &BucketSource{
		log:    log.Named("extract.gcs"),
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *BucketSource) Close() error {
	return s.client.Close()
}

func (s *BucketSource) Fetch(ctx context.Context, kind record.Kind) (record.RawBatch, error) {
	key, err := s.findKey(ctx, kind)
	if err != nil {
		return record.RawBatch{}, err
	}

	reader, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return record.RawBatch{}, fmt.Errorf("open gs://%s/%s: %w", s.bucket, key, err)
	}
	defer reader.Close()

	var rows []record.RawRow
	if strings.HasSuffix(key, ".csv") {
		rows, err = decodeCSV(reader)
	} else {
		rows, err = decodeJSON(reader)
	}
	if err != nil {
		return record.RawBatch{}, fmt.Errorf("decode gs://%s/%s: %w", s.bucket, key, err)
	}

	s.log.Info("loaded gcs batch",
		zap.String("kind", string(kind)),
		zap.String("object", key),
		zap.Int("rows", len(rows)),
	)
	return record.RawBatch{Kind: kind, Rows: rows}, nil
}

// findKey lists objects under the prefix and picks the first whose base name
// matches the kind's file, csv before json. Other objects are skipped.
func (s *BucketSource) findKey(ctx context.Context, kind record.Kind) (string, error) {
	base := fileBase(kind)
	candidates := map[string]string{}

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("list gs://%s/%s: %w", s.bucket, s.prefix, err)
		}
		name := path.Base(attrs.Name)
		ext := path.Ext(name)
		if strings.TrimSuffix(name, ext) != base {
			continue
		}
		if ext == ".csv" || ext == ".json" {
			candidates[ext] = attrs.Name
		}
	}

	for _, ext := range []string{".csv", ".json"} {
		if key, ok := candidates[ext]; ok {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s under gs://%s/%s", ErrBatchNotFound, base, s.bucket, s.prefix)
}
