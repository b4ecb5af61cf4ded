package extract

import (
	"context"
	"errors"

	"github.com/retailworks/retailpulse/internal/record"
)

var (
	ErrBatchNotFound   = errors.New("batch_not_found")
	ErrUnsupportedFile = errors.New("unsupported_file")
)

// Source fetches one raw batch per table kind. The pipeline does not care
// whether rows came from local disk or an object store.
type Source interface {
	Fetch(ctx context.Context, kind record.Kind) (record.RawBatch, error)
}

// fileBase maps a table kind to the file name (sans extension) the feeds
// ship under.
func fileBase(kind record.Kind) string {
	switch kind {
	case record.KindSales:
		return "sales_data"
	case record.KindProduct:
		return "product_data"
	default:
		return string(kind)
	}
}
