package domain

import (
	"time"

	"github.com/couchcryptid/epw-etl/internal/epw"
)

// FieldSummary aggregates one measured field over a file. Min, Max and Mean
// are zero when no value is present.
type FieldSummary struct {
	Name    string    `json:"name"`
	Unit    string    `json:"unit,omitempty"`
	Present int       `json:"present"`
	Missing int       `json:"missing"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Mean    float64   `json:"mean"`
	MinAt   time.Time `json:"min_at"`
	MaxAt   time.Time `json:"max_at"`
}

// Summary describes a decoded file.
type Summary struct {
	Station string         `json:"station"`
	Records int            `json:"records"`
	First   time.Time      `json:"first"`
	Last    time.Time      `json:"last"`
	Fields  []FieldSummary `json:"fields"`
}

// Field returns the summary of the named field.
func (s Summary) Field(name string) (FieldSummary, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSummary{}, false
}

// Summarize computes per-field statistics for every numeric field of the
// file. Missing values are counted, not averaged.
func Summarize(file *epw.File) Summary {
	s := Summary{
		Station: file.Header.Location.String(),
		Records: len(file.Data),
	}
	if len(file.Data) > 0 {
		s.First = file.Data[0].Timestamp
		s.Last = file.Data[len(file.Data)-1].Timestamp
	}

	for _, f := range epw.Schema() {
		if f.Kind != epw.KindFloat && f.Kind != epw.KindInteger {
			continue
		}
		fs := FieldSummary{Name: f.Name, Unit: f.Unit}
		var sum float64
		for i := range file.Data {
			rec := &file.Data[i]
			v, ok := numeric(f.Value(rec))
			if !ok {
				fs.Missing++
				continue
			}
			if fs.Present == 0 || v < fs.Min {
				fs.Min, fs.MinAt = v, rec.Timestamp
			}
			if fs.Present == 0 || v > fs.Max {
				fs.Max, fs.MaxAt = v, rec.Timestamp
			}
			sum += v
			fs.Present++
		}
		if fs.Present > 0 {
			fs.Mean = sum / float64(fs.Present)
		}
		s.Fields = append(s.Fields, fs)
	}
	return s
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
