package arxharvest

import "context"

// RecordWriter persists the accumulated harvest output.
type RecordWriter interface {
	// WriteRecords writes every record as a single document, replacing any
	// previous output.
	WriteRecords(ctx context.Context, records []*Record) error
}

// PageArchive captures raw listing pages for later inspection.
// SavePage stages a page body; Commit makes the archive permanent;
// Abort discards staged pages.
type PageArchive interface {
	SavePage(ctx context.Context, offset int, body string) error
	Commit() error
	Abort() error
}
