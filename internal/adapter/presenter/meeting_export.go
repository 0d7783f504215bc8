package presenter

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ExportSheet is the worksheet holding one row per meeting
const ExportSheet = "Meetings"

var exportHeader = []interface{}{
	"ID", "Title", "Created At", "Original Filename", "Stored Filename",
	"Transcript", "Summary", "Action Items",
}

// ToMeetingWorkbook renders meetings as an xlsx workbook, in the given order
func ToMeetingWorkbook(meetings []*entities.Meeting) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename the default sheet instead of adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, m := range meetings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			m.ID,
			deref(m.Title),
			m.CreatedAt.UTC().Format(time.RFC3339),
			m.UploadMetadata().OriginalFilename,
			m.Filename,
			fitCell(deref(m.Transcript)),
			fitCell(deref(m.Summary)),
			fitCell(deref(m.ActionItems)),
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ExportSheet, "F", "H", 60); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// fitCell keeps s within the excelize cell limit. Longer text is cut and
// ends with a marker carrying the full length, since excelize would
// otherwise cut it silently.
func fitCell(s string) string {
	n := utf8.RuneCountInString(s)
	if n <= excelize.TotalCellChars {
		return s
	}
	marker := fmt.Sprintf(" ... [truncated, %d chars]", n)
	keep := excelize.TotalCellChars - utf8.RuneCountInString(marker)
	return string([]rune(s)[:keep]) + marker
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
