package export

import (
	"fmt"
	"io"
	"time"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	resultsSheet = "Candidates"
)

var resultHeaders = []string{
	"Candidate", "Source Document", "Outcome", "Educations", "Experiences", "Skills", "Retryable", "Message",
}

// outcomeFill colours a result row by outcome.
var outcomeFill = map[resume.Outcome]string{
	resume.OutcomeProcessed:        "C6EFCE",
	resume.OutcomeAlreadyProcessed: "FFEB9C",
	resume.OutcomeNoSourceDocument: "FFEB9C",
	resume.OutcomeFailed:           "FFC7CE",
}

// WriteSummaries writes a two-sheet XLSX workbook for a vacancy batch: run
// totals and one row per candidate.
func WriteSummaries(w io.Writer, result *resume.VacancyProcessingResponse, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("failed to create results sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, headerStyle, result, generatedAt); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeResultsSheet(f, headerStyle, result.Summaries); err != nil {
		return fmt.Errorf("failed to create results sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, result *resume.VacancyProcessingResponse, generatedAt time.Time) error {
	f.SetColWidth(summarySheet, "A", "A", 25)
	f.SetColWidth(summarySheet, "B", "B", 40)

	if err := f.SetCellValue(summarySheet, "A1", "Resume Processing Report"); err != nil {
		return err
	}
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.MergeCell(summarySheet, "A1", "B1")

	rows := [][2]any{
		{"Vacancy:", result.JobID.String()},
		{"Generated:", generatedAt.Format("2006-01-02 15:04:05")},
		{"Candidates:", len(result.Summaries)},
		{"Processed:", result.Processed},
		{"Skipped:", result.Skipped},
		{"Failed:", result.Failed},
	}
	for i, r := range rows {
		row := i + 3
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeResultsSheet(f *excelize.File, headerStyle int, summaries []resume.ProcessingSummary) error {
	f.SetColWidth(resultsSheet, "A", "B", 38)
	f.SetColWidth(resultsSheet, "C", "C", 28)
	f.SetColWidth(resultsSheet, "D", "G", 12)
	f.SetColWidth(resultsSheet, "H", "H", 60)

	for col, header := range resultHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(resultsSheet, cell, header); err != nil {
			return err
		}
		f.SetCellStyle(resultsSheet, cell, cell, headerStyle)
	}

	styles := make(map[resume.Outcome]int)
	for outcome, color := range outcomeFill {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		styles[outcome] = style
	}

	for i, s := range summaries {
		row := i + 2
		document := ""
		if s.SourceDocumentID != nil {
			document = s.SourceDocumentID.String()
		}
		values := []any{
			s.CandidateID.String(),
			document,
			string(s.Outcome),
			s.EducationsAdded,
			s.ExperiencesAdded,
			s.SkillsAdded,
			s.Retryable,
			s.Message,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(resultsSheet, start, &values); err != nil {
			return err
		}
		if style, ok := styles[s.Outcome]; ok {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			f.SetCellStyle(resultsSheet, start, end, style)
		}
	}

	if len(summaries) > 0 {
		f.AutoFilter(resultsSheet, fmt.Sprintf("A1:H%d", len(summaries)+1), []excelize.AutoFilterOptions{})
	}

	// Freeze top row
	return f.SetPanes(resultsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
