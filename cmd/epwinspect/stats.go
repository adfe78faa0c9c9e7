package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print per-field statistics",
		Long: `Prints the present and missing counts, minimum, maximum and mean of
each numeric field. Missing values are counted, not averaged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFile(args[0])
			if err != nil {
				return err
			}
			s := domain.Summarize(f)
			if fields := a.v.GetStringSlice("stats.fields"); len(fields) > 0 {
				s, err = selectFields(s, fields)
				if err != nil {
					return err
				}
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			return renderStats(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringSlice("field", nil, "limit output to these fields (repeatable)")
	_ = a.v.BindPFlag("stats.fields", cmd.Flags().Lookup("field"))
	return cmd
}

func selectFields(s domain.Summary, names []string) (domain.Summary, error) {
	selected := make([]domain.FieldSummary, 0, len(names))
	for _, name := range names {
		f, ok := s.Field(name)
		if !ok {
			return s, fmt.Errorf("unknown field %q", name)
		}
		selected = append(selected, f)
	}
	s.Fields = selected
	return s, nil
}

func renderStats(w io.Writer, s domain.Summary) error {
	rows := [][]string{{"field", "unit", "present", "missing", "min", "max", "mean", "max at"}}
	for _, f := range s.Fields {
		row := []string{f.Name, f.Unit, strconv.Itoa(f.Present), strconv.Itoa(f.Missing), "-", "-", "-", "-"}
		if f.Present > 0 {
			row[4] = formatValue(f.Min)
			row[5] = formatValue(f.Max)
			row[6] = fmt.Sprintf("%.2f", f.Mean)
			row[7] = f.MaxAt.Format(time.DateTime)
		}
		rows = append(rows, row)
	}

	span := "no records"
	if s.Records > 0 {
		span = fmt.Sprintf("%s to %s", s.First.Format(time.DateTime), s.Last.Format(time.DateTime))
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n\n%s",
		titleStyle.Render(s.Station),
		kv("Records", s.Records),
		kv("Span", span),
		table(rows),
	)
	return err
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
