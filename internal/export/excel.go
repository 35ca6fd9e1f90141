// Package export writes ranked shortlists to Excel workbooks.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names of a shortlist workbook
const (
	SummarySheet         = "Summary"
	CandidatesSheet      = "Ranked Candidates"
	RecommendationsSheet = "Recommendations"
)

// Shortlist is a job posting with its ranked candidates
type Shortlist struct {
	JobTitle    string
	JobType     string
	GeneratedAt time.Time
	Candidates  []ranking.RankedCandidate
}

var candidateHeaders = []string{
	"Rank", "Candidate", "Overall", "Fit", "Skills", "Experience",
	"Education", "Soft Skills", "Location", "Salary", "Confidence", "Missing Skills",
}

// band colours by fit level, best first
var fitColors = map[types.FitLevel]string{
	types.FitExcellent: "C6EFCE",
	types.FitVeryGood:  "C6EFCE",
	types.FitGood:      "FFEB9C",
	types.FitFair:      "FFEB9C",
	types.FitPoor:      "FFC7CE",
	types.FitVeryPoor:  "FF9999",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// SaveShortlist writes the workbook to path, adding the .xlsx extension when missing.
// It returns the path actually written.
func SaveShortlist(s *Shortlist, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := build(s)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

// WriteShortlist writes the workbook to w.
func WriteShortlist(s *Shortlist, w io.Writer) error {
	f, err := build(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func build(s *Shortlist) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{CandidatesSheet, RecommendationsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	steps := []struct {
		name string
		fn   func(*excelize.File, *Shortlist) error
	}{
		{SummarySheet, writeSummary},
		{CandidatesSheet, writeCandidates},
		{RecommendationsSheet, writeRecommendations},
	}
	for _, step := range steps {
		if err := step.fn(f, s); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to fill %s sheet: %w", step.name, err)
		}
	}
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
}

func writeSummary(f *excelize.File, s *Shortlist) error {
	sheet := SummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Candidate Shortlist"},
		{},
		{"Job Title:", s.JobTitle},
		{"Job Type:", s.JobType},
		{"Generated:", s.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Candidates Ranked:", len(s.Candidates)},
	}

	if len(s.Candidates) > 0 {
		counts := make(map[types.FitLevel]int)
		var total, best, worst int
		best, worst = s.Candidates[0].Result.OverallScore, s.Candidates[0].Result.OverallScore
		for _, c := range s.Candidates {
			score := c.Result.OverallScore
			counts[c.Result.FitLevel]++
			total += score
			best, worst = max(best, score), min(worst, score)
		}

		rows = append(rows,
			[]any{"Average Score:", fmt.Sprintf("%.2f", float64(total)/float64(len(s.Candidates)))},
			[]any{"Highest Score:", best},
			[]any{"Lowest Score:", worst},
			[]any{},
			[]any{"Fit Distribution"},
		)
		for _, level := range types.FitLevels {
			rows = append(rows, []any{string(level), counts[level]})
		}
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", "B1", title)
}

func writeCandidates(f *excelize.File, s *Shortlist) error {
	sheet := CandidatesSheet
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "K", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "L", "L", 40); err != nil {
		return err
	}

	headers := make([]any, len(candidateHeaders))
	for i, h := range candidateHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(candidateHeaders))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", header); err != nil {
		return err
	}

	styles := make(map[types.FitLevel]int, len(fitColors))
	for level, color := range fitColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		styles[level] = id
	}

	for i, c := range s.Candidates {
		row := i + 2
		scores := c.Result.CategoryScores
		name := c.Name
		if name == "" {
			name = c.CandidateID.String()
		}
		values := []any{
			i + 1,
			name,
			c.Result.OverallScore,
			string(c.Result.FitLevel),
			scores.Skills.Score,
			scores.Experience.Score,
			scores.Education.Score,
			scores.SoftSkills.Score,
			scores.Location.Score,
			scores.Salary.Score,
			c.Result.Confidence,
			strings.Join(scores.Skills.Missing, ", "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if style, ok := styles[c.Result.FitLevel]; ok {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(sheet, cell, end, style); err != nil {
				return err
			}
		}
	}

	if len(s.Candidates) > 0 {
		ref := fmt.Sprintf("A1:%s%d", lastCol, len(s.Candidates)+1)
		if err := f.AutoFilter(sheet, ref, nil); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRecommendations(f *excelize.File, s *Shortlist) error {
	sheet := RecommendationsSheet
	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 70); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &[]any{"Rank", "Candidate", "Recommendation"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", header); err != nil {
		return err
	}

	row := 2
	for i, c := range s.Candidates {
		lines := append([]string{c.Notes}, c.Result.Recommendations...)
		for _, line := range lines {
			if line == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheet, cell, &[]any{i + 1, c.Name, line}); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, fmt.Sprintf("C%d", row), wrap); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
