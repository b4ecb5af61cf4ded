package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/retailworks/retailpulse/internal/record"
)

// LocalSource reads raw batches from a folder on disk. It accepts either a
// CSV or a JSON file per kind, CSV winning when both exist.
type LocalSource struct {
	log    *zap.Logger
	folder string
}

func NewLocalSource(folder string, log *zap.Logger) *LocalSource {
	return &LocalSource{
		log:    log.Named("extract.local"),
		folder: folder,
	}
}

func (s *LocalSource) Fetch(ctx context.Context, kind record.Kind) (record.RawBatch, error) {
	base := fileBase(kind)
	for _, ext := range []string{".csv", ".json"} {
		path := filepath.Join(s.folder, base+ext)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return record.RawBatch{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		var rows []record.RawRow
		if ext == ".csv" {
			rows, err = decodeCSV(f)
		} else {
			rows, err = decodeJSON(f)
		}
		if err != nil {
			return record.RawBatch{}, fmt.Errorf("decode %s: %w", path, err)
		}

		s.log.Info("loaded local batch",
			zap.String("kind", string(kind)),
			zap.String("file", path),
			zap.Int("rows", len(rows)),
		)
		return record.RawBatch{Kind: kind, Rows: rows}, nil
	}
	return record.RawBatch{}, fmt.Errorf("%w: %s in %s", ErrBatchNotFound, base, s.folder)
}
