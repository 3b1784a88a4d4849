// Package fs provides file-based storage for training records.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/recipeset"
)

// Training file names inside the data directory.
const (
	PositiveFile = "train_positive.jsonl"
	NegativeFile = "train_negative.jsonl"
)

// DefaultDataDir is the directory the training files are written to.
const DefaultDataDir = "data"

// FormatLine encodes a record as one JSON line, newline included. HTML
// characters are not escaped.
func FormatLine(r recipeset.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure RecordWriter implements recipeset.RecordWriter at compile time.
var _ recipeset.RecordWriter = (*RecordWriter)(nil)

// RecordWriter appends labeled records to the positive and negative
// training files in a directory.
//
// Every WriteRecords call opens both files in append mode and closes them
// before returning. Each line goes out in a single write, so concurrent
// writers never interleave within a line.
type RecordWriter struct {
	baseDir string
}

// NewRecordWriter creates a new RecordWriter for the given directory.
func NewRecordWriter(baseDir string) *RecordWriter {
	return &RecordWriter{baseDir: baseDir}
}

// Path returns the file that records with the given label are appended to.
func (w *RecordWriter) Path(label recipeset.Label) string {
	if label == recipeset.LabelPositive {
		return filepath.Join(w.baseDir, PositiveFile)
	}
	return filepath.Join(w.baseDir, NegativeFile)
}

// WriteRecords appends the records to the training files.
func (w *RecordWriter) WriteRecords(ctx context.Context, records []recipeset.LabeledRecord) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make([][]byte, len(records))
	for i, r := range records {
		if r.Label != recipeset.LabelPositive && r.Label != recipeset.LabelNegative {
			return recipeset.Errorf(recipeset.EINVALID, "unknown record label %q", r.Label)
		}
		if lines[i], err = FormatLine(r.Record); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	positive, err := openAppend(w.Path(recipeset.LabelPositive))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, positive.Close()) }()

	negative, err := openAppend(w.Path(recipeset.LabelNegative))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, negative.Close()) }()

	for i, r := range records {
		f := negative
		if r.Label == recipeset.LabelPositive {
			f = positive
		}
		if _, err := f.Write(lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
