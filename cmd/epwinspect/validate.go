package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/spf13/cobra"
)

var errChecksFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check record counts and ordering against the header",
		Long: `Decodes each file and checks that the record count matches the data
periods, that the first record falls on the first period day and that
timestamps do not go backwards. Exits non-zero when any check fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			type report struct {
				File   string         `json:"file"`
				Error  string         `json:"error,omitempty"`
				Checks []domain.Check `json:"checks,omitempty"`
				Passed bool           `json:"passed"`
			}

			reports := make([]report, 0, len(args))
			ok := true
			for _, path := range args {
				r := report{File: path}
				f, err := loadFile(path)
				if err != nil {
					r.Error = err.Error()
				} else {
					r.Checks = domain.Validate(f)
					r.Passed = domain.Passed(r.Checks)
				}
				ok = ok && r.Passed
				reports = append(reports, r)

				if !a.jsonOutput() {
					if err := renderChecks(out, path, r.Checks, r.Error); err != nil {
						return err
					}
				}
			}

			if a.jsonOutput() {
				if err := writeJSON(out, reports); err != nil {
					return err
				}
			}
			if !ok {
				return errChecksFailed
			}
			return nil
		},
	}
}

func renderChecks(w io.Writer, path string, checks []domain.Check, decodeErr string) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(path)); err != nil {
		return err
	}
	if decodeErr != "" {
		_, err := fmt.Fprintf(w, "%s %s\n", failStyle.Render("FAIL"), decodeErr)
		return err
	}
	for _, c := range checks {
		status := passStyle.Render("PASS")
		if !c.Passed {
			status = failStyle.Render("FAIL")
		}
		if _, err := fmt.Fprintf(w, "%s %s  %s\n", status, labelStyle.Render(c.Name), dimStyle.Render(c.Detail)); err != nil {
			return err
		}
	}
	return nil
}
