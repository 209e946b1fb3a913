package conversion

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"dcon/internal/radix"
)

var jsonAPI = sonic.ConfigDefault

// Record is the JSON form of one batch item. Renderings appear under the
// base names that were requested; failures carry Error and Kind instead.
type Record struct {
	Numeral string `json:"numeral"`
	Source  string `json:"source,omitempty"`
	Value   string `json:"value,omitempty"`
	Bin     string `json:"bin,omitempty"`
	Oct     string `json:"oct,omitempty"`
	Dec     string `json:"dec,omitempty"`
	Hex     string `json:"hex,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// Record converts the item to its JSON form.
func (it Item) Record() Record {
	rec := Record{Numeral: it.Numeral}
	if it.Err != nil {
		rec.Error = it.Err.Error()
		rec.Kind = radix.Kind(it.Err)
		return rec
	}
	rec.Source = it.Result.Source.String()
	rec.Value = it.Result.Value.String()
	for _, o := range it.Result.Outputs {
		switch o.Base {
		case radix.Binary:
			rec.Bin = o.Text
		case radix.Octal:
			rec.Oct = o.Text
		case radix.Decimal:
			rec.Dec = o.Text
		case radix.Hex:
			rec.Hex = o.Text
		}
	}
	return rec
}

// WriteJSONLines writes one JSON object per item.
func WriteJSONLines(w io.Writer, items []Item) error {
	for _, it := range items {
		data, err := jsonAPI.Marshal(it.Record())
		if err != nil {
			return fmt.Errorf("encode %q: %w", it.Numeral, err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}
