package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docdex.Ingester = (*Ingester)(nil)

// Ingester is a mock implementation of docdex.Ingester.
type Ingester struct {
	IngestTreeFn func(ctx context.Context, root string) (int, error)
}

func (i *Ingester) IngestTree(ctx context.Context, root string) (int, error) {
	return i.IngestTreeFn(ctx, root)
}
