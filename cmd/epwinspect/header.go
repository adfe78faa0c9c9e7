package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/spf13/cobra"
)

func newHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header FILE",
		Short: "Print the decoded header sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFile(args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), f.Header)
			}
			return renderHeader(cmd.OutOrStdout(), f)
		},
	}
}

func renderHeader(w io.Writer, f *epw.File) error {
	h := f.Header
	loc := h.Location

	lines := []string{
		titleStyle.Render(loc.String()),
		sectionStyle.Render("Location"),
		kv("City", loc.City),
		kv("Region", loc.Region),
		kv("Country", loc.Country),
		kv("Source", loc.Source),
		kv("WMO", loc.WMO),
		kv("Coordinates", fmt.Sprintf("%g, %g", loc.Latitude, loc.Longitude)),
		kv("Time zone", loc.Zone()),
		kv("Elevation", fmt.Sprintf("%g m", loc.Elevation)),

		sectionStyle.Render("Data periods"),
		kv("Records per hour", h.DataPeriods.RecordsPerHour),
	}
	for _, p := range h.DataPeriods.Periods {
		lines = append(lines, kv(p.Name, fmt.Sprintf("%s to %s (starts %s)", p.Start, p.End, p.StartDayOfWeek)))
	}
	lines = append(lines, kv("Records", len(f.Data)))

	if len(h.TypicalExtremePeriods.Periods) > 0 {
		lines = append(lines, sectionStyle.Render("Typical/extreme periods"))
		for _, p := range h.TypicalExtremePeriods.Periods {
			lines = append(lines, kv(p.Kind.String(), fmt.Sprintf("%s to %s  %s", p.Start, p.End, dimStyle.Render(p.Name))))
		}
	}

	if len(h.GroundTemperatures.Depths) > 0 {
		lines = append(lines, sectionStyle.Render("Ground temperatures (C)"))
		for _, d := range h.GroundTemperatures.Depths {
			monthly := make([]string, len(d.Monthly))
			for i, v := range d.Monthly {
				monthly[i] = fmt.Sprintf("%.1f", v)
			}
			lines = append(lines, kv(fmt.Sprintf("%g m", d.Depth), strings.Join(monthly, " ")))
		}
	}

	hol := h.HolidaysDaylightSavings
	lines = append(lines,
		sectionStyle.Render("Holidays/daylight savings"),
		kv("Leap year", hol.LeapYear),
		kv("DST", fmt.Sprintf("%s to %s", hol.DaylightSavingsStart, hol.DaylightSavingsEnd)),
	)
	for _, hd := range hol.Holidays {
		lines = append(lines, kv(hd.Name, hd.Date))
	}

	lines = append(lines, sectionStyle.Render("Design conditions"))
	for _, c := range h.DesignConditions.Conditions {
		lines = append(lines,
			kv("Source", c.Source),
			kv("Values", fmt.Sprintf("%d heating, %d cooling, %d extremes", len(c.Heating), len(c.Cooling), len(c.Extremes))),
		)
	}

	for _, c := range []epw.Comments{h.Comments1, h.Comments2} {
		if c.Text != "" {
			lines = append(lines, boxStyle.Render(c.Text))
		}
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
