package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"growthai/portal/internal/onboarding"
)

// PDFOptions configures PDF generation
type PDFOptions struct {
	PageSize       string     `json:"page_size"`   // A4, Letter, Legal
	Orientation    string     `json:"orientation"` // portrait, landscape
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle,omitempty"`
	DateFormat     string     `json:"date_format"`
	IncludePageNum bool       `json:"include_page_num"`
	HeaderColor    PDFColor   `json:"header_color"`
	AlternateRows  bool       `json:"alternate_rows"`
	AlternateColor PDFColor   `json:"alternate_color"`
	FontFamily     string     `json:"font_family"`
	FontSize       float64    `json:"font_size"`
	TitleFontSize  float64    `json:"title_font_size"`
	LabelWidth     float64    `json:"label_width"`
	Margins        PDFMargins `json:"margins"`
}

// PDFColor represents an RGB color
type PDFColor struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// PDFMargins represents page margins
type PDFMargins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:       "A4",
		Orientation:    "portrait",
		Title:          "GrowthAI Onboarding Summary",
		Subtitle:       "Total Autonomous Growth Engine",
		DateFormat:     "2006-01-02 15:04:05",
		IncludePageNum: true,
		HeaderColor:    PDFColor{R: 6, G: 182, B: 212},
		AlternateRows:  true,
		AlternateColor: PDFColor{R: 242, G: 242, B: 242},
		FontFamily:     "Arial",
		FontSize:       10,
		TitleFontSize:  16,
		LabelWidth:     50,
		Margins: PDFMargins{
			Left:   15,
			Right:  15,
			Top:    20,
			Bottom: 20,
		},
	}
}

// PDFExporter renders summaries as a titled two-column table
type PDFExporter struct {
	options PDFOptions
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter(options PDFOptions) *PDFExporter {
	return &PDFExporter{options: options}
}

func (e *PDFExporter) Format() Format { return FormatPDF }

func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export renders the summary and writes the document
func (e *PDFExporter) Export(w io.Writer, summary *onboarding.Summary) error {
	opts := e.options

	orientation := "P"
	if opts.Orientation == "landscape" {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", opts.PageSize, "")
	pdf.SetMargins(opts.Margins.Left, opts.Margins.Top, opts.Margins.Right)
	pdf.SetAutoPageBreak(true, opts.Margins.Bottom)
	// Core fonts are cp1252; answers are free text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if opts.IncludePageNum {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-15)
			pdf.SetFont(opts.FontFamily, "", 8)
			pdf.SetTextColor(128, 128, 128)
			pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		})
	}

	pdf.AddPage()

	pdf.SetFont(opts.FontFamily, "B", opts.TitleFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(opts.Title), "", 1, "C", false, 0, "")

	if opts.Subtitle != "" {
		pdf.SetFont(opts.FontFamily, "", opts.FontSize+2)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, tr(opts.Subtitle), "", 1, "C", false, 0, "")
	}

	pdf.SetFont(opts.FontFamily, "", opts.FontSize-1)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", summary.GeneratedAt.Format(opts.DateFormat)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Session: %s", summary.SessionID), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Table header
	pdf.SetFont(opts.FontFamily, "B", opts.FontSize+1)
	pdf.SetFillColor(opts.HeaderColor.R, opts.HeaderColor.G, opts.HeaderColor.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(opts.LabelWidth, 8, summaryColumns[0], "1", 0, "C", true, 0, "")
	pdf.CellFormat(0, 8, summaryColumns[1], "1", 1, "C", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	for i, line := range summary.Lines {
		if opts.AlternateRows && i%2 == 1 {
			pdf.SetFillColor(opts.AlternateColor.R, opts.AlternateColor.G, opts.AlternateColor.B)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		// Long answers wrap; the label cell grows with them.
		pdf.SetFont(opts.FontFamily, "", opts.FontSize)
		pageWidth, _ := pdf.GetPageSize()
		valueWidth := pageWidth - opts.Margins.Left - opts.Margins.Right - opts.LabelWidth
		lines := pdf.SplitLines([]byte(tr(line.Value)), valueWidth-2)
		height := 7 * float64(max(len(lines), 1))

		x, y := pdf.GetXY()
		pdf.SetFont(opts.FontFamily, "B", opts.FontSize)
		pdf.CellFormat(opts.LabelWidth, height, tr(line.Label), "1", 0, "L", true, 0, "")
		pdf.SetFont(opts.FontFamily, "", opts.FontSize)
		pdf.SetXY(x+opts.LabelWidth, y)
		pdf.MultiCell(valueWidth, 7, tr(line.Value), "1", "L", true)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
