package main

import (
	"fmt"
	"io"

	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/spf13/cobra"
)

func newManifestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the column manifest of decoded records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cols := epw.Manifest()
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), cols)
			}
			return renderManifest(cmd.OutOrStdout(), cols)
		},
	}
}

func renderManifest(w io.Writer, cols []epw.Column) error {
	rows := [][]string{{"#", "column", "type", "unit"}}
	for i, c := range cols {
		rows = append(rows, []string{fmt.Sprint(i), c.Name, c.Type.String(), c.Unit})
	}
	_, err := fmt.Fprint(w, table(rows))
	return err
}
