// Package fs provides file-based persistence for harvest output.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/arxharvest"
)

// Ensure Writer implements arxharvest.RecordWriter at compile time.
var _ arxharvest.RecordWriter = (*Writer)(nil)

// Writer persists records as a single indented JSON array. The output
// file is replaced atomically via a temp file rename, so readers never
// observe a partially written array.
type Writer struct {
	path string
}

// NewWriter creates a new Writer that writes to the given file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteRecords validates and encodes all records, then replaces the
// output file.
func (w *Writer) WriteRecords(ctx context.Context, records []*arxharvest.Record) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}

	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), w.path)
}

// EncodeRecords renders records as a four-space indented JSON array.
// Non-ASCII characters are written as-is rather than escaped.
func EncodeRecords(records []*arxharvest.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRecords parses a JSON array produced by EncodeRecords.
func DecodeRecords(data []byte) ([]*arxharvest.Record, error) {
	var records []*arxharvest.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, arxharvest.Errorf(arxharvest.EINVALID, "failed to parse records: %v", err)
	}
	return records, nil
}
