package export

import (
	"fmt"
	"io"
	"strings"

	"growthai/portal/internal/onboarding"
)

// Format is an export file format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
	FormatCSV   Format = "csv"
)

// Column headers shared by the tabular formats
var summaryColumns = []string{"Field", "Value"}

// Exporter writes an onboarding summary in one file format
type Exporter interface {
	Format() Format
	ContentType() string
	Export(w io.Writer, summary *onboarding.Summary) error
}

// ByFormat returns the exporter for a format name such as "pdf", "xlsx"
// or "csv". "excel" is accepted as an alias for "xlsx".
func ByFormat(name string) (Exporter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatPDF:
		return NewPDFExporter(DefaultPDFOptions()), nil
	case FormatExcel, "excel":
		return NewExcelExporter(DefaultExcelOptions()), nil
	case FormatCSV:
		return NewCSVExporter(DefaultCSVOptions()), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %q", name)
	}
}

// FileName is the attachment name for a summary export
func FileName(summary *onboarding.Summary, format Format) string {
	return fmt.Sprintf("growthai-onboarding-%s.%s", summary.GeneratedAt.Format("20060102-150405"), format)
}
