package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"growthai/portal/internal/onboarding"
)

// CSVOptions configures CSV export behavior
type CSVOptions struct {
	Delimiter       rune   `json:"delimiter"`
	UseCRLF         bool   `json:"use_crlf"`
	IncludeHeader   bool   `json:"include_header"`
	IncludeMetadata bool   `json:"include_metadata"` // Session id and timestamp rows
	TimestampFormat string `json:"timestamp_format"`
}

// DefaultCSVOptions returns default CSV export options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:       ',',
		IncludeHeader:   true,
		IncludeMetadata: true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	}
}

// CSVExporter exports summaries as two-column CSV
type CSVExporter struct {
	options CSVOptions
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(options CSVOptions) *CSVExporter {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	return &CSVExporter{options: options}
}

func (e *CSVExporter) Format() Format { return FormatCSV }

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export writes the summary lines, one row per field
func (e *CSVExporter) Export(w io.Writer, summary *onboarding.Summary) error {
	writer := csv.NewWriter(w)
	writer.Comma = e.options.Delimiter
	writer.UseCRLF = e.options.UseCRLF

	var records [][]string
	if e.options.IncludeHeader {
		records = append(records, summaryColumns)
	}
	for _, line := range summary.Lines {
		records = append(records, []string{line.Label, line.Value})
	}
	if e.options.IncludeMetadata {
		records = append(records,
			[]string{"Session", summary.SessionID.String()},
			[]string{"Generated", summary.GeneratedAt.Format(e.options.TimestampFormat)},
		)
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
