package mock

import (
	"context"

	"github.com/fwojciec/arxharvest"
)

var _ arxharvest.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of arxharvest.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*arxharvest.Record) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*arxharvest.Record) error {
	return w.WriteRecordsFn(ctx, records)
}

var _ arxharvest.PageArchive = (*PageArchive)(nil)

// PageArchive is a mock implementation of arxharvest.PageArchive.
type PageArchive struct {
	SavePageFn func(ctx context.Context, offset int, body string) error
	CommitFn   func() error
	AbortFn    func() error
}

func (a *PageArchive) SavePage(ctx context.Context, offset int, body string) error {
	return a.SavePageFn(ctx, offset, body)
}

func (a *PageArchive) Commit() error {
	return a.CommitFn()
}

func (a *PageArchive) Abort() error {
	return a.AbortFn()
}
