package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"growthai/portal/internal/onboarding"
)

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	SheetName       string            `json:"sheet_name"`
	FreezeHeader    bool              `json:"freeze_header"`
	TimestampFormat string            `json:"timestamp_format"`
	HeaderStyle     *ExcelStyleConfig `json:"header_style,omitempty"`
	DataStyle       *ExcelStyleConfig `json:"data_style,omitempty"`
	AutoWidth       bool              `json:"auto_width"`
}

// ExcelStyleConfig defines style for cells
type ExcelStyleConfig struct {
	FontBold  bool   `json:"font_bold"`
	FontSize  int    `json:"font_size"`
	FontColor string `json:"font_color"`
	FillColor string `json:"fill_color"`
	Alignment string `json:"alignment"` // left, center, right
	Border    bool   `json:"border"`
	WrapText  bool   `json:"wrap_text"`
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		SheetName:       "Onboarding",
		FreezeHeader:    true,
		TimestampFormat: "2006-01-02 15:04:05",
		AutoWidth:       true,
		HeaderStyle: &ExcelStyleConfig{
			FontBold:  true,
			FontSize:  11,
			FillColor: "06B6D4",
			FontColor: "000000",
			Alignment: "center",
			Border:    true,
		},
		DataStyle: &ExcelStyleConfig{
			FontSize:  11,
			Alignment: "left",
			Border:    true,
			WrapText:  true,
		},
	}
}

// ExcelExporter exports summaries as a single-sheet workbook
type ExcelExporter struct {
	options ExcelOptions
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(options ExcelOptions) *ExcelExporter {
	if options.SheetName == "" {
		options.SheetName = "Onboarding"
	}
	return &ExcelExporter{options: options}
}

func (e *ExcelExporter) Format() Format { return FormatExcel }

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes a header row followed by one row per summary line
func (e *ExcelExporter) Export(w io.Writer, summary *onboarding.Summary) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := e.options.SheetName
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := make([][]string, 0, len(summary.Lines)+2)
	for _, line := range summary.Lines {
		rows = append(rows, []string{line.Label, line.Value})
	}
	rows = append(rows,
		[]string{"Session", summary.SessionID.String()},
		[]string{"Generated", summary.GeneratedAt.Format(e.options.TimestampFormat)},
	)

	if err := e.writeHeader(file, sheet); err != nil {
		return err
	}
	if err := e.writeRows(file, sheet, rows); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *ExcelExporter) writeHeader(file *excelize.File, sheet string) error {
	styleID := 0
	if e.options.HeaderStyle != nil {
		id, err := createStyle(file, e.options.HeaderStyle)
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		styleID = id
	}

	for i, col := range summaryColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if styleID > 0 {
			file.SetCellStyle(sheet, cell, cell, styleID)
		}
	}

	if e.options.FreezeHeader {
		file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	return nil
}

func (e *ExcelExporter) writeRows(file *excelize.File, sheet string, rows [][]string) error {
	styleID := 0
	if e.options.DataStyle != nil {
		id, err := createStyle(file, e.options.DataStyle)
		if err != nil {
			return fmt.Errorf("failed to create data style: %w", err)
		}
		styleID = id
	}

	widths := make([]float64, len(summaryColumns))
	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := file.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
			if styleID > 0 {
				file.SetCellStyle(sheet, cell, cell, styleID)
			}
			if w := float64(utf8.RuneCountInString(val)) * 1.2; w > widths[c] {
				widths[c] = w
			}
		}
	}

	if e.options.AutoWidth {
		for c, width := range widths {
			// Min width 10, max width 60
			width = min(max(width, 10), 60)
			col, _ := excelize.ColumnNumberToName(c + 1)
			file.SetColWidth(sheet, col, col, width)
		}
	}
	return nil
}

// createStyle creates an Excel style from config
func createStyle(file *excelize.File, config *ExcelStyleConfig) (int, error) {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:  config.FontBold,
			Size:  float64(config.FontSize),
			Color: config.FontColor,
		},
	}

	if config.FillColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{config.FillColor},
		}
	}

	if config.Alignment != "" || config.WrapText {
		style.Alignment = &excelize.Alignment{
			Horizontal: config.Alignment,
			WrapText:   config.WrapText,
		}
	}

	if config.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}

	return file.NewStyle(style)
}
