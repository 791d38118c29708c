package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/fjellheim/treedu/internal/history"
	"github.com/fjellheim/treedu/internal/scan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// Row is one listing line of the final report.
type Row struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Size   int64  `json:"size"`
	Human  string `json:"human_size"`
	Depth  int    `json:"depth"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the full presentation payload for one scan.
type Report struct {
	Root       string       `json:"root"`
	Entries    []Row        `json:"entries"`
	Summary    scan.Summary `json:"summary"`
	DeltaBytes *int64       `json:"delta_bytes,omitempty"`
}

// buildReport converts a sorted listing into display rows. Paths are
// shown relative to the scanned root, slash-separated.
func buildReport(root string, listing []scan.Entry, summary scan.Summary, previous *history.Record) Report {
	rows := make([]Row, 0, len(listing))

	for _, e := range listing {
		display := e.Path
		if rel, err := filepath.Rel(root, e.Path); err == nil {
			display = rel
		}

		row := Row{
			Path:   filepath.ToSlash(display),
			Kind:   e.Kind.String(),
			Size:   e.Size,
			Human:  humanize.IBytes(uint64(e.Size)), //nolint:gosec // Sizes are never negative
			Depth:  e.Depth,
			Status: e.Status.String(),
		}

		if e.Err != nil {
			row.Error = e.Err.Error()
		}

		rows = append(rows, row)
	}

	report := Report{Root: filepath.ToSlash(root), Entries: rows, Summary: summary}

	if previous != nil {
		delta := summary.TotalBytes - previous.TotalBytes
		report.DeltaBytes = &delta
	}

	return report
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report in human-readable table format.
func PrintTable(report Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nLargest entries:\t\t")

	for _, row := range report.Entries {
		note := ""

		switch {
		case row.Error != "":
			note = " (" + row.Error + ")"
		case row.Status == scan.StatusPartiallyFailed.String():
			note = " (partial)"
		}

		fmt.Fprintf(w, "  %s\t%s\t%s%s\n", row.Human, row.Kind, row.Path, note)
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(report.Summary.TotalBytes)), report.Summary.TotalBytes) //nolint:gosec // Bytes is always positive
	fmt.Fprintf(w, "Total items:\t%d\n", report.Summary.TotalItems)

	if report.Summary.ErrorCount > 0 {
		fmt.Fprintf(w, "Errors:\t%d (some entries could not be read)\n", report.Summary.ErrorCount)
	}

	fmt.Fprintf(w, "Status:\t%s\n", report.Summary.Status)

	if report.DeltaBytes != nil {
		fmt.Fprintf(w, "Change since last scan:\t%s\n", formatDelta(*report.DeltaBytes))
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Summary.Elapsed)

	return w.Flush()
}

// formatDelta renders a signed byte difference.
func formatDelta(delta int64) string {
	switch {
	case delta > 0:
		return "+" + humanize.IBytes(uint64(delta))
	case delta < 0:
		return "-" + humanize.IBytes(uint64(-delta))
	default:
		return "no change"
	}
}

// PrintHistory outputs previous scans of a root, newest first.
func PrintHistory(root string, records []history.Record, writer io.Writer) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(writer, "no recorded scans for %s\n", root)

		return err
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nScans of %s:\t\t\n", filepath.ToSlash(root))

	for _, rec := range records {
		fmt.Fprintf(w, "  %s\t%s\t%d items\t%d errors\t%v\n",
			rec.ScannedAt.Format("2006-01-02 15:04:05"),
			humanize.IBytes(uint64(rec.TotalBytes)), //nolint:gosec // Bytes is always positive
			rec.TotalItems, rec.ErrorCount, rec.Elapsed)
	}

	return w.Flush()
}
