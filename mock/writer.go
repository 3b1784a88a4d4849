package mock

import (
	"context"

	"github.com/fwojciec/recipeset"
)

var _ recipeset.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of recipeset.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []recipeset.LabeledRecord) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []recipeset.LabeledRecord) error {
	return w.WriteRecordsFn(ctx, records)
}
