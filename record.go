package recipeset

import "context"

// Label classifies a training record and selects its target file.
type Label string

// Label constants for LabeledRecord.
const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
)

// Record is one line of a training file.
type Record struct {
	Text string `json:"text"`
}

// LabeledRecord is a Record paired with the label that routes it.
type LabeledRecord struct {
	Label  Label
	Record Record
}

// FormatRecord renders a prompt/response pair in the chat template used by
// the training files.
func FormatRecord(systemPrompt, window, target string) Record {
	return Record{
		Text: "<|user|>" + systemPrompt + "\n" + window + "<|end|>\n<|assistant|>\n" + target + "<|end|>",
	}
}

// BuildRecords returns the records appended for one page, in write order.
// The with-ingredients window is labeled by the model result; the
// before-ingredients window is always recorded as a negative example.
func BuildRecords(systemPrompt string, windows *ExtractedHTML, recipe *Recipe) []LabeledRecord {
	records := make([]LabeledRecord, 0, 2)

	if len(recipe.Ingredients) == 0 {
		records = append(records, LabeledRecord{
			Label:  LabelNegative,
			Record: FormatRecord(systemPrompt, windows.WithIngredients, NoneTarget),
		})
	} else {
		records = append(records, LabeledRecord{
			Label:  LabelPositive,
			Record: FormatRecord(systemPrompt, windows.WithIngredients, recipe.Target()),
		})
	}

	records = append(records, LabeledRecord{
		Label:  LabelNegative,
		Record: FormatRecord(systemPrompt, windows.BeforeIngredients, NoneTarget),
	})

	return records
}

// RecordWriter appends training records to persistent storage.
type RecordWriter interface {
	// WriteRecords appends the records for one page. Storage is opened and
	// closed within the call.
	WriteRecords(ctx context.Context, records []LabeledRecord) error
}
