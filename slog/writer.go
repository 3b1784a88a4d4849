package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recipeset"
)

// Ensure LoggingRecordWriter implements recipeset.RecordWriter.
var _ recipeset.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with logging.
type LoggingRecordWriter struct {
	next   recipeset.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next recipeset.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecords logs the label counts and delegates to the wrapped writer.
func (w *LoggingRecordWriter) WriteRecords(ctx context.Context, records []recipeset.LabeledRecord) (err error) {
	defer func(begin time.Time) {
		var positive, negative int
		for _, r := range records {
			if r.Label == recipeset.LabelPositive {
				positive++
			} else {
				negative++
			}
		}
		w.logger.Info("write records",
			"positive", positive,
			"negative", negative,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecords(ctx, records)
}
